package handlers_test

import (
	"context"

	"github.com/serroba/shortlink/internal/shortener"
)

// failingStore fails every call with err.
type failingStore struct {
	err error
}

func (f failingStore) FindByCode(context.Context, shortener.Code) (*shortener.Record, error) {
	return nil, f.err
}

func (f failingStore) FindByLongURL(context.Context, string) (*shortener.Record, error) {
	return nil, f.err
}

func (f failingStore) Insert(context.Context, *shortener.Record) (*shortener.Record, error) {
	return nil, f.err
}

func (f failingStore) IncrementHits(context.Context, int64) (*shortener.Record, error) {
	return nil, f.err
}

package service

import (
	"context"
	"crypto/rand"
	"strconv"
	"time"

	"codehunt/internal/cch24/repository"
	"codehunt/internal/common/cache"
	"codehunt/internal/common/clock"
	pkgerrors "codehunt/pkg/errors"
	baserepo "codehunt/pkg/repository"

	"github.com/google/uuid"
)

const (
	// QuotesPerPage is the size of a /19/list page.
	QuotesPerPage = 3

	pageTokenLength = 16
	pageTokenKey    = "cch24:19:token:"
	tokenAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// QuotePage is one page of the quote listing.
type QuotePage struct {
	Quotes    []*repository.Quote `json:"quotes"`
	Page      int64               `json:"page"`
	NextToken *string             `json:"next_token"`
}

// QuoteService drafts, revises and pages through quotes. Page tokens live in
// the cache and stay valid until they expire.
type QuoteService struct {
	repo     repository.QuoteRepository
	tokens   cache.BasicOps
	clock    clock.Clock
	tokenTTL time.Duration
}

func NewQuoteService(repo repository.QuoteRepository, tokens cache.BasicOps, clk clock.Clock, tokenTTL time.Duration) *QuoteService {
	return &QuoteService{repo: repo, tokens: tokens, clock: clk, tokenTTL: tokenTTL}
}

// storeError maps repository failures onto API errors.
func storeError(err error) error {
	if baserepo.IsNotFoundError(err) {
		return pkgerrors.Wrap(err, pkgerrors.QuoteNotFound)
	}
	return pkgerrors.Wrap(err, pkgerrors.QuoteStoreFailure)
}

func parseQuoteID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrapf(err, pkgerrors.InvalidParams, "invalid quote id %q", raw)
	}
	return id, nil
}

func (s *QuoteService) Migrate(ctx context.Context) error {
	if err := s.repo.Migrate(ctx); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *QuoteService) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *QuoteService) Draft(ctx context.Context, author, text string) (*repository.Quote, error) {
	q := &repository.Quote{
		ID:        uuid.New(),
		Author:    author,
		Quote:     text,
		CreatedAt: s.clock.Now().UTC().Format(time.RFC3339Nano),
		Version:   1,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, storeError(err)
	}
	return q, nil
}

func (s *QuoteService) Cite(ctx context.Context, rawID string) (*repository.Quote, error) {
	id, err := parseQuoteID(rawID)
	if err != nil {
		return nil, err
	}
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return q, nil
}

func (s *QuoteService) Undo(ctx context.Context, rawID, author, text string) (*repository.Quote, error) {
	id, err := parseQuoteID(rawID)
	if err != nil {
		return nil, err
	}
	q, err := s.repo.Revise(ctx, id, author, text)
	if err != nil {
		return nil, storeError(err)
	}
	return q, nil
}

func (s *QuoteService) Remove(ctx context.Context, rawID string) (*repository.Quote, error) {
	id, err := parseQuoteID(rawID)
	if err != nil {
		return nil, err
	}
	q, err := s.repo.Take(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return q, nil
}

// List returns the first page, or the page a previous token points at.
func (s *QuoteService) List(ctx context.Context, token string) (*QuotePage, error) {
	page := int64(1)
	if token != "" {
		stored, err := s.tokens.Get(ctx, pageTokenKey+token)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.CacheError)
		}
		if stored == "" {
			return nil, pkgerrors.New(pkgerrors.PageTokenUnknown)
		}
		page, err = strconv.ParseInt(stored, 10, 64)
		if err != nil || page < 1 {
			return nil, pkgerrors.New(pkgerrors.PageTokenUnknown)
		}
	}

	// One extra row tells whether a next page exists.
	quotes, err := s.repo.List(ctx, baserepo.ListOptions{
		Offset: int(page-1) * QuotesPerPage,
		Limit:  QuotesPerPage + 1,
	})
	if err != nil {
		return nil, storeError(err)
	}
	result := &QuotePage{Quotes: quotes, Page: page}
	if len(quotes) > QuotesPerPage {
		result.Quotes = quotes[:QuotesPerPage]
		next, err := s.issueToken(ctx, page+1)
		if err != nil {
			return nil, err
		}
		result.NextToken = &next
	}
	return result, nil
}

func (s *QuoteService) issueToken(ctx context.Context, page int64) (string, error) {
	token := randomToken()
	if err := s.tokens.Set(ctx, pageTokenKey+token, strconv.FormatInt(page, 10), s.tokenTTL); err != nil {
		return "", pkgerrors.Wrap(err, pkgerrors.CacheSetFailed)
	}
	return token, nil
}

// randomToken draws from tokenAlphabet uniformly. Bytes at or above the
// largest multiple of the alphabet size are rejected.
func randomToken() string {
	limit := 256 - 256%len(tokenAlphabet)
	token := make([]byte, 0, pageTokenLength)
	buf := make([]byte, pageTokenLength)
	for len(token) < pageTokenLength {
		_, _ = rand.Read(buf)
		for _, b := range buf {
			if int(b) >= limit || len(token) == pageTokenLength {
				continue
			}
			token = append(token, tokenAlphabet[int(b)%len(tokenAlphabet)])
		}
	}
	return string(token)
}

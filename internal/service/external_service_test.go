package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/uniadvisor/counsel-api/internal/repository"
	"github.com/uniadvisor/counsel-api/pkg/hipo"
)

type stubDirectory struct {
	hits []hipo.University
	err  error

	lastLimit  int
	lastOffset int
}

func (s *stubDirectory) Search(_ context.Context, country, name string, limit, offset int) ([]hipo.University, error) {
	s.lastLimit = limit
	s.lastOffset = offset
	return s.hits, s.err
}

func TestExternalSearchMarksImported(t *testing.T) {
	db := openTestDB(t, "external_service")
	createTestUniversity(t, db, "Stanford University", 3.7)

	directory := &stubDirectory{hits: []hipo.University{
		{Name: "Stanford University", Country: "United States", Website: "http://www.stanford.edu/"},
		{Name: "University of Oxford", Country: "United Kingdom"},
	}}
	svc := NewExternalSearchService(directory, repository.NewUniversityRepository(db), zerolog.Nop())

	results, err := svc.Search(context.Background(), "", "", 10, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.True(t, results[0].Imported)
	require.False(t, results[1].Imported)
	require.Equal(t, "http://www.stanford.edu/", results[0].Website)
}

func TestExternalSearchClampsPagination(t *testing.T) {
	db := openTestDB(t, "external_service_limits")
	directory := &stubDirectory{}
	svc := NewExternalSearchService(directory, repository.NewUniversityRepository(db), zerolog.Nop())

	_, err := svc.Search(context.Background(), "", "", 0, -5)
	require.NoError(t, err)
	require.Equal(t, defaultSearchLimit, directory.lastLimit)
	require.Equal(t, 0, directory.lastOffset)

	_, err = svc.Search(context.Background(), "", "", 5000, 10)
	require.NoError(t, err)
	require.Equal(t, maxSearchLimit, directory.lastLimit)
	require.Equal(t, 10, directory.lastOffset)
}

func TestExternalSearchPropagatesDirectoryError(t *testing.T) {
	db := openTestDB(t, "external_service_error")
	directory := &stubDirectory{err: errors.New("directory unreachable")}
	svc := NewExternalSearchService(directory, repository.NewUniversityRepository(db), zerolog.Nop())

	_, err := svc.Search(context.Background(), "Canada", "", 10, 0)
	require.Error(t, err)
}

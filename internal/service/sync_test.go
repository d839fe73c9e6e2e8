package service_test

import (
	"context"
	"os"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/portfolio/internal/database"
	"github.com/mtlprog/portfolio/internal/domain"
	"github.com/mtlprog/portfolio/internal/repository"
	"github.com/mtlprog/portfolio/internal/service"
)

// SyncServiceTestSuite runs against a real PostgreSQL given by DATABASE_URL.
type SyncServiceTestSuite struct {
	suite.Suite
	pool        *pgxpool.Pool
	assetRepo   *repository.AssetRepository
	syncService *service.SyncService
}

func (s *SyncServiceTestSuite) SetupSuite() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		s.T().Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, databaseURL)
	s.Require().NoError(err, "failed to connect to database")
	s.pool = db.Pool()

	err = database.RunMigrations(ctx, s.pool)
	s.Require().NoError(err, "failed to run migrations")

	s.assetRepo = repository.NewAssetRepository(s.pool)
	s.syncService = service.NewSyncService(s.pool, s.assetRepo, service.NewValidator(0))
}

func (s *SyncServiceTestSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE assets")
	s.Require().NoError(err, "failed to truncate assets")
}

func (s *SyncServiceTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func TestSyncServiceSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}

func (s *SyncServiceTestSuite) TestSyncDir_UploadsAndSkipsUnchanged() {
	ctx := context.Background()
	site := fstest.MapFS{
		"index.html":   {Data: []byte("<html>v1</html>")},
		"css/site.css": {Data: []byte("body{}")},
	}

	result, err := s.syncService.SyncDir(ctx, site, false)
	s.Require().NoError(err)
	s.Equal(2, result.Uploaded)

	site["index.html"] = &fstest.MapFile{Data: []byte("<html>v2</html>")}
	result, err = s.syncService.SyncDir(ctx, site, false)
	s.Require().NoError(err)
	s.Equal(1, result.Uploaded)
	s.Equal(1, result.Unchanged)

	asset, err := s.assetRepo.Get(ctx, "index.html")
	s.Require().NoError(err)
	s.Equal("<html>v2</html>", string(asset.Body))
	s.Equal("text/html; charset=utf-8", asset.ContentType)
	s.False(asset.UpdatedAt.IsZero())
}

func (s *SyncServiceTestSuite) TestSyncDir_Prune() {
	ctx := context.Background()

	_, err := s.syncService.SyncDir(ctx, fstest.MapFS{
		"index.html": {Data: []byte("a")},
		"old.js":     {Data: []byte("b")},
	}, false)
	s.Require().NoError(err)

	result, err := s.syncService.SyncDir(ctx, fstest.MapFS{
		"index.html": {Data: []byte("a")},
	}, true)
	s.Require().NoError(err)
	s.Equal(1, result.Deleted)

	_, err = s.assetRepo.Get(ctx, "old.js")
	s.ErrorIs(err, domain.ErrAssetNotFound)
}

func (s *SyncServiceTestSuite) TestGet_NotFound() {
	_, err := s.assetRepo.Get(context.Background(), "missing.html")
	s.ErrorIs(err, domain.ErrAssetNotFound)
}

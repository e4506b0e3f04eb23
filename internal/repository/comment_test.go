package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	postID := uint(1)
	userID := uint(2)
	comment := &models.Comment{PostID: &postID, UserID: &userID, Body: "nice post"}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), comment)
	require.NoError(t, err)
	assert.Equal(t, uint(10), comment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Create_DropsCachedPost(t *testing.T) {
	mr := setupCacheRedis(t)
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	require.NoError(t, mr.Set(cache.PostKey(5), `{"id":5,"total_comments":1}`))

	postID := uint(5)
	userID := uint(2)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &models.Comment{PostID: &postID, UserID: &userID, Body: "count me"})
	require.NoError(t, err)
	// The cached detail carries total_comments, so it is stale now.
	assert.False(t, mr.Exists(cache.PostKey(5)))

	// A reply does not change any post's comment count; the cache stays.
	require.NoError(t, mr.Set(cache.PostKey(5), `{"id":5,"total_comments":2}`))
	parentID := uint(11)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	err = repo.Create(context.Background(), &models.Comment{ParentID: &parentID, UserID: &userID, Body: "me too"})
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.PostKey(5)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments" WHERE post_id = $1`)).
		WithArgs("5").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT comments\.\*, \(SELECT COUNT\(\*\) FROM comments AS replies WHERE replies\.parent_id = comments\.id\) AS total_replies FROM "comments" WHERE post_id = \$1 ORDER BY timestamp DESC LIMIT \$2`).
		WithArgs("5", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "body", "timestamp", "total_replies"}).
			AddRow(2, 5, "second", now, 0).
			AddRow(1, 5, "first", now.Add(-time.Minute), 3))

	comments, meta, err := repo.ListByPost(context.Background(), ListQuery{
		Filters: map[string]string{"post__id": "5"},
	})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Body)
	assert.Equal(t, 3, comments[1].TotalReplies)
	assert.Equal(t, int64(2), meta.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByPost_PageBeyondLast(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "comments" WHERE post_id = $1`)).
		WithArgs("5").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	_, _, err := repo.ListByPost(context.Background(), ListQuery{
		Filters: map[string]string{"post__id": "5"},
		Page:    9,
	})
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListReplies(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	now := time.Now()
	// Replies are never paginated; the whole level comes back newest first.
	mock.ExpectQuery(`SELECT comments\.\*.*FROM "comments" WHERE parent_id = \$1 ORDER BY timestamp DESC`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id", "body", "timestamp", "total_replies"}).
			AddRow(12, 7, "newer reply", now, 1).
			AddRow(11, 7, "older reply", now.Add(-time.Hour), 0))

	replies, err := repo.ListReplies(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "newer reply", replies[0].Body)
	assert.Equal(t, 1, replies[0].TotalReplies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(`SELECT comments\.\*.*FROM "comments" WHERE "comments"\."id" = \$1`).
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	comment, err := repo.GetByID(context.Background(), 99)
	assert.Error(t, err)
	assert.Nil(t, comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

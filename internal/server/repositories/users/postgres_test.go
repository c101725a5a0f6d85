package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/orgvault/internal/common"
	"github.com/dmitrijs2005/orgvault/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*org_id,\s*username,\s*password,\s*status,\s*roles\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+created_at,\s*updated_at\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("user-1", "org-1", "alice", "hash", "active", "Editor").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	u := &models.User{ID: "user-1", OrgID: "org-1", Username: "alice", Password: "hash", Status: "active", Roles: "Editor"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "user-1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestFindByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "org_id", "username", "password", "status", "roles", "created_at", "updated_at"}).
		AddRow("user-1", "org-1", "alice", "hash", "active", "Editor", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername error: %v", err)
	}
	if got.ID != "user-1" || got.Roles != "Editor" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestFindByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+status\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("user-1", "inactive").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), "user-1", "inactive"); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
}

func TestUpdateRoles_NoRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+roles\s*=\s*\$2`).
		WithArgs("ghost", "Viewer").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRoles(context.Background(), "ghost", "Viewer")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestListByOrg_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "org_id", "username", "password", "status", "roles", "created_at", "updated_at"}).
		AddRow("user-1", "org-1", "alice", "hash", "active", "Editor", time.Now(), time.Now()).
		AddRow("user-2", "org-1", "bob", "hash", "active", "Viewer", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+users\s+WHERE\s+org_id\s*=\s*\$1\s+ORDER\s+BY\s+username\s+ASC`).
		WithArgs("org-1").
		WillReturnRows(rows)

	got, err := repo.ListByOrg(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("ListByOrg error: %v", err)
	}
	if len(got) != 2 || got[1].Username != "bob" {
		t.Fatalf("unexpected users: %+v", got)
	}
}

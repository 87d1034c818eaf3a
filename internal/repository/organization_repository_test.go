package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/workhive/workhive-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockOrganizationRepository(t *testing.T) (OrganizationRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewOrganizationRepository(db), mock
}

func TestOrganizationRepository_SetPin(t *testing.T) {
	repo, mock := newMockOrganizationRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `organizations` SET").
		WithArgs("1234", sqlmock.AnyArg(), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetPin(42, "1234")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_FindMember(t *testing.T) {
	repo, mock := newMockOrganizationRepository(t)

	rows := sqlmock.NewRows([]string{"id", "organization_id", "user_id", "role", "is_owner", "is_admin"}).
		AddRow(7, 42, 9, "admin", false, true)

	mock.ExpectQuery("SELECT \\* FROM `organization_members` WHERE organization_id = \\? AND user_id = \\?").
		WithArgs(uint64(42), uint64(9), 1).
		WillReturnRows(rows)

	member, err := repo.FindMember(42, 9)
	require.NoError(t, err)
	require.EqualValues(t, 42, member.OrganizationID)
	require.Equal(t, models.RoleAdmin, member.EffectiveRole())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_FindMember_NotFound(t *testing.T) {
	repo, mock := newMockOrganizationRepository(t)

	mock.ExpectQuery("SELECT \\* FROM `organization_members`").
		WithArgs(uint64(42), uint64(9), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindMember(42, 9)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_RemoveMember(t *testing.T) {
	repo, mock := newMockOrganizationRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `organization_members` WHERE organization_id = \\? AND user_id = \\?").
		WithArgs(uint64(42), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RemoveMember(42, 9)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_UpdateMemberRole(t *testing.T) {
	repo, mock := newMockOrganizationRepository(t)

	// Role and the legacy flag pair are rewritten together.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `organization_members` SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), uint64(42), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateMemberRole(42, 9, models.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationRepository_Delete_CascadesInTransaction(t *testing.T) {
	repo, mock := newMockOrganizationRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE `resources` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE `categories` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `prompts` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `organization_members`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE `organizations` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(42)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

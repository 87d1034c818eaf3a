package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/workhive/workhive-api/internal/authz"
	"github.com/workhive/workhive-api/internal/constants"
	"github.com/workhive/workhive-api/internal/database"
	"github.com/workhive/workhive-api/internal/dto"
	"github.com/workhive/workhive-api/internal/models"
	"github.com/workhive/workhive-api/internal/repository"
	"github.com/workhive/workhive-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type organizationTestEnv struct {
	db         *gorm.DB
	handler    *OrganizationHandler
	orgService *services.OrganizationService
}

func setupOrganizationTestEnv(t *testing.T) organizationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Category{},
		&models.Resource{},
		&models.Prompt{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	orgRepo := repository.NewOrganizationRepository(db)
	gate := authz.NewGate(orgRepo)
	orgService := services.NewOrganizationService(orgRepo, gate)
	handler := NewOrganizationHandler(orgService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return organizationTestEnv{
		db:         db,
		handler:    handler,
		orgService: orgService,
	}
}

func orgTestContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func createTestOrganizationUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{
		Email:        email,
		DisplayName:  email,
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedOrganizationWithPin(t *testing.T, db *gorm.DB, pin string) *models.Organization {
	org := &models.Organization{
		Name:       "Seeded Org",
		InviteCode: "SEED-CODE",
		Pin:        pin,
	}
	require.NoError(t, db.Create(org).Error)
	return org
}

func seedMembership(t *testing.T, db *gorm.DB, orgID, userID uint64, role models.OrganizationRole) {
	require.NoError(t, db.Create(&models.OrganizationMember{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		JoinedAt:       time.Now(),
	}).Error)
}

// setOrganizationContext simulates RequireOrganizationAccess.
func setOrganizationContext(c *gin.Context, org models.Organization, member models.OrganizationMember) {
	c.Set(constants.ContextKeyOrganization, org)
	c.Set(constants.ContextKeyOrganizationMember, member)
}

func TestOrganizationHandler_CreateOrganization(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	user := createTestOrganizationUser(t, env.db, "owner@example.com")

	payload := map[string]string{"name": "New Org"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodPost, "/api/organizations", body, user.ID)

	env.handler.CreateOrganization(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.OrganizationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["name"], response.Name)
	require.NotEmpty(t, response.InviteCode)
	require.False(t, response.HasPin)
}

func TestOrganizationHandler_ListOrganizations(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	user := createTestOrganizationUser(t, env.db, "member@example.com")

	_, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:    "Org One",
		OwnerID: user.ID,
	})
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodGet, "/api/organizations", nil, user.ID)

	env.handler.ListOrganizations(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.OrganizationWithRoleDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	orgs := response["organizations"]
	require.Len(t, orgs, 1)
	require.Equal(t, "Org One", orgs[0].OrganizationDTO.Name)
	require.Equal(t, models.RoleOwner, orgs[0].Role)
}

func TestOrganizationHandler_JoinOrganization_InvalidCode(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	user := createTestOrganizationUser(t, env.db, "user@example.com")

	payload := map[string]string{"invite_code": "UNKNOWN"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodPost, "/api/organizations/join", body, user.ID)

	env.handler.JoinOrganization(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrganizationHandler_SetPin(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrganizationUser(t, env.db, "owner@example.com")
	admin := createTestOrganizationUser(t, env.db, "admin@example.com")
	org := seedOrganizationWithPin(t, env.db, "")
	seedMembership(t, env.db, org.ID, owner.ID, models.RoleOwner)
	seedMembership(t, env.db, org.ID, admin.ID, models.RoleAdmin)

	body, err := json.Marshal(map[string]string{"pin": "1234"})
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodPut, "/api/organizations/1/pin", body, owner.ID)
	setOrganizationContext(c, *org, models.OrganizationMember{OrganizationID: org.ID, UserID: owner.ID, Role: models.RoleOwner})

	env.handler.SetPin(c)

	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Organization
	require.NoError(t, env.db.First(&stored, org.ID).Error)
	require.Equal(t, "1234", stored.Pin)

	// Admins cannot manage the PIN.
	body, err = json.Marshal(map[string]string{"pin": "5678"})
	require.NoError(t, err)

	c, w = orgTestContext(http.MethodPut, "/api/organizations/1/pin", body, admin.ID)
	setOrganizationContext(c, *org, models.OrganizationMember{OrganizationID: org.ID, UserID: admin.ID, Role: models.RoleAdmin})

	env.handler.SetPin(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	// Malformed PINs are rejected.
	body, err = json.Marshal(map[string]string{"pin": "12ab"})
	require.NoError(t, err)

	c, w = orgTestContext(http.MethodPut, "/api/organizations/1/pin", body, owner.ID)
	setOrganizationContext(c, *org, models.OrganizationMember{OrganizationID: org.ID, UserID: owner.ID, Role: models.RoleOwner})

	env.handler.SetPin(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrganizationHandler_RemoveMember(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrganizationUser(t, env.db, "owner@example.com")
	target := createTestOrganizationUser(t, env.db, "target@example.com")
	org := seedOrganizationWithPin(t, env.db, "1234")
	seedMembership(t, env.db, org.ID, owner.ID, models.RoleOwner)
	seedMembership(t, env.db, org.ID, target.ID, models.RoleMember)

	ownerMember := models.OrganizationMember{OrganizationID: org.ID, UserID: owner.ID, Role: models.RoleOwner}

	removeMember := func(actorID, targetID uint64, pin string) *httptest.ResponseRecorder {
		body, err := json.Marshal(map[string]string{"pin": pin})
		require.NoError(t, err)

		c, w := orgTestContext(http.MethodDelete, "/api/organizations/1/members/"+strconv.FormatUint(targetID, 10), body, actorID)
		setOrganizationContext(c, *org, ownerMember)
		c.Params = gin.Params{{Key: "user_id", Value: strconv.FormatUint(targetID, 10)}}

		env.handler.RemoveMember(c)
		return w
	}

	// Wrong PIN: nothing happens.
	w := removeMember(owner.ID, target.ID, "9999")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "PIN_REJECTED")

	var count int64
	env.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", org.ID, target.ID).
		Count(&count)
	require.EqualValues(t, 1, count)

	// Removing yourself fails before the PIN is even considered.
	w = removeMember(owner.ID, owner.ID, "9999")
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Correct PIN: the member is gone.
	w = removeMember(owner.ID, target.ID, "1234")
	require.Equal(t, http.StatusOK, w.Code)

	env.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", org.ID, target.ID).
		Count(&count)
	require.EqualValues(t, 0, count)
}

func TestOrganizationHandler_RemoveMember_TargetIsOwner(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrganizationUser(t, env.db, "owner@example.com")
	coOwner := createTestOrganizationUser(t, env.db, "co-owner@example.com")
	org := seedOrganizationWithPin(t, env.db, "1234")
	seedMembership(t, env.db, org.ID, owner.ID, models.RoleOwner)
	seedMembership(t, env.db, org.ID, coOwner.ID, models.RoleOwner)

	// Owner protection fires before the PIN check, so even a wrong PIN
	// reports the real reason.
	body, err := json.Marshal(map[string]string{"pin": "9999"})
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodDelete, "/api/organizations/1/members/"+strconv.FormatUint(coOwner.ID, 10), body, owner.ID)
	setOrganizationContext(c, *org, models.OrganizationMember{OrganizationID: org.ID, UserID: owner.ID, Role: models.RoleOwner})
	c.Params = gin.Params{{Key: "user_id", Value: strconv.FormatUint(coOwner.ID, 10)}}

	env.handler.RemoveMember(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "TARGET_IS_OWNER")
}

func TestOrganizationHandler_ChangeMemberRole(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrganizationUser(t, env.db, "owner@example.com")
	target := createTestOrganizationUser(t, env.db, "target@example.com")
	org := seedOrganizationWithPin(t, env.db, "1234")
	seedMembership(t, env.db, org.ID, owner.ID, models.RoleOwner)
	seedMembership(t, env.db, org.ID, target.ID, models.RoleMember)

	changeRole := func(role, pin string) *httptest.ResponseRecorder {
		body, err := json.Marshal(map[string]string{"role": role, "pin": pin})
		require.NoError(t, err)

		c, w := orgTestContext(http.MethodPut, "/api/organizations/1/members/"+strconv.FormatUint(target.ID, 10)+"/role", body, owner.ID)
		setOrganizationContext(c, *org, models.OrganizationMember{OrganizationID: org.ID, UserID: owner.ID, Role: models.RoleOwner})
		c.Params = gin.Params{{Key: "user_id", Value: strconv.FormatUint(target.ID, 10)}}

		env.handler.ChangeMemberRole(c)
		return w
	}

	// Owner is not a valid target role through this endpoint.
	w := changeRole("owner", "1234")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = changeRole("admin", "9999")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = changeRole("admin", "1234")
	require.Equal(t, http.StatusOK, w.Code)

	var member models.OrganizationMember
	require.NoError(t, env.db.Where("organization_id = ? AND user_id = ?", org.ID, target.ID).First(&member).Error)
	require.Equal(t, models.RoleAdmin, member.EffectiveRole())
}

func TestOrganizationHandler_DeleteOrganization(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrganizationUser(t, env.db, "owner@example.com")
	org := seedOrganizationWithPin(t, env.db, "1234")
	seedMembership(t, env.db, org.ID, owner.ID, models.RoleOwner)

	require.NoError(t, env.db.Create(&models.Task{
		Title:          "Org Task",
		CreatorID:      owner.ID,
		OrganizationID: org.ID,
	}).Error)

	deleteOrg := func(nameConfirmation, pin string) *httptest.ResponseRecorder {
		body, err := json.Marshal(map[string]string{
			"name_confirmation": nameConfirmation,
			"pin":               pin,
		})
		require.NoError(t, err)

		c, w := orgTestContext(http.MethodDelete, "/api/organizations/1", body, owner.ID)
		setOrganizationContext(c, *org, models.OrganizationMember{OrganizationID: org.ID, UserID: owner.ID, Role: models.RoleOwner})

		env.handler.DeleteOrganization(c)
		return w
	}

	// Name mismatch fails before the PIN is checked.
	w := deleteOrg("Wrong Name", "9999")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = deleteOrg(org.Name, "9999")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "PIN_REJECTED")

	w = deleteOrg(org.Name, "1234")
	require.Equal(t, http.StatusOK, w.Code)

	var orgCount, taskCount, memberCount int64
	env.db.Model(&models.Organization{}).Where("id = ?", org.ID).Count(&orgCount)
	env.db.Model(&models.Task{}).Where("organization_id = ?", org.ID).Count(&taskCount)
	env.db.Model(&models.OrganizationMember{}).Where("organization_id = ?", org.ID).Count(&memberCount)
	require.EqualValues(t, 0, orgCount)
	require.EqualValues(t, 0, taskCount)
	require.EqualValues(t, 0, memberCount)
}

func TestOrganizationHandler_DeleteOrganization_PinNotConfigured(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	owner := createTestOrganizationUser(t, env.db, "owner@example.com")
	org := seedOrganizationWithPin(t, env.db, "")
	seedMembership(t, env.db, org.ID, owner.ID, models.RoleOwner)

	body, err := json.Marshal(map[string]string{
		"name_confirmation": org.Name,
		"pin":               "1234",
	})
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodDelete, "/api/organizations/1", body, owner.ID)
	setOrganizationContext(c, *org, models.OrganizationMember{OrganizationID: org.ID, UserID: owner.ID, Role: models.RoleOwner})

	env.handler.DeleteOrganization(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "PIN_NOT_CONFIGURED")
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

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

type promptTestEnv struct {
	db      *gorm.DB
	handler *PromptHandler
}

func setupPromptTestEnv(t *testing.T) promptTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Prompt{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	promptRepo := repository.NewPromptRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	gate := authz.NewGate(orgRepo)

	// No AI service wired: draft requests must report 503, everything
	// else works without it.
	handler := NewPromptHandler(services.NewPromptService(promptRepo, gate, nil))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return promptTestEnv{
		db:      db,
		handler: handler,
	}
}

func promptTestContext(method, url string, body []byte, userID uint64, org models.Organization) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)
	c.Set(constants.ContextKeyOrganization, org)

	return c, w
}

func seedPrompt(t *testing.T, db *gorm.DB, orgID, creatorID uint64) *models.Prompt {
	t.Helper()

	prompt := &models.Prompt{
		Title:          "Follow-up email",
		Body:           "Hi {{name}}, just checking in on our last conversation.",
		Tone:           "friendly",
		OrganizationID: orgID,
		CreatorID:      creatorID,
	}
	require.NoError(t, db.Create(prompt).Error)
	return prompt
}

func TestPromptHandler_CreatePrompt(t *testing.T) {
	env := setupPromptTestEnv(t)

	user := createTestOrganizationUser(t, env.db, "writer@example.com")
	org := seedOrganizationWithPin(t, env.db, "")
	seedMembership(t, env.db, org.ID, user.ID, models.RoleMember)

	body, err := json.Marshal(map[string]string{
		"title": "Cold outreach",
		"body":  "Hello {{name}}, I came across your work on {{topic}}.",
		"tone":  "formal",
	})
	require.NoError(t, err)

	c, w := promptTestContext(http.MethodPost, "/api/organizations/1/prompts", body, user.ID, *org)

	env.handler.CreatePrompt(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.PromptDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "Cold outreach", created.Title)
	require.Equal(t, "formal", created.Tone)
}

func TestPromptHandler_CreatePrompt_MissingBody(t *testing.T) {
	env := setupPromptTestEnv(t)

	user := createTestOrganizationUser(t, env.db, "writer@example.com")
	org := seedOrganizationWithPin(t, env.db, "")
	seedMembership(t, env.db, org.ID, user.ID, models.RoleMember)

	body, err := json.Marshal(map[string]string{"title": "No body"})
	require.NoError(t, err)

	c, w := promptTestContext(http.MethodPost, "/api/organizations/1/prompts", body, user.ID, *org)

	env.handler.CreatePrompt(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPromptHandler_ListPrompts(t *testing.T) {
	env := setupPromptTestEnv(t)

	user := createTestOrganizationUser(t, env.db, "writer@example.com")
	org := seedOrganizationWithPin(t, env.db, "")
	seedMembership(t, env.db, org.ID, user.ID, models.RoleMember)

	seedPrompt(t, env.db, org.ID, user.ID)
	seedPrompt(t, env.db, org.ID, user.ID)

	c, w := promptTestContext(http.MethodGet, "/api/organizations/1/prompts", nil, user.ID, *org)

	env.handler.ListPrompts(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.PromptListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Prompts, 2)
	require.EqualValues(t, 2, response.TotalCount)
}

func TestPromptHandler_UpdatePrompt(t *testing.T) {
	env := setupPromptTestEnv(t)

	user := createTestOrganizationUser(t, env.db, "writer@example.com")
	org := seedOrganizationWithPin(t, env.db, "")
	seedMembership(t, env.db, org.ID, user.ID, models.RoleMember)

	prompt := seedPrompt(t, env.db, org.ID, user.ID)

	body, err := json.Marshal(map[string]string{"tone": "casual"})
	require.NoError(t, err)

	c, w := promptTestContext(http.MethodPatch, "/api/organizations/1/prompts/1", body, user.ID, *org)
	c.Params = gin.Params{{Key: "prompt_id", Value: strconv.FormatUint(prompt.ID, 10)}}

	env.handler.UpdatePrompt(c)

	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.PromptDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "casual", updated.Tone)
	require.Equal(t, prompt.Title, updated.Title)
}

func TestPromptHandler_DeletePrompt(t *testing.T) {
	env := setupPromptTestEnv(t)

	admin := createTestOrganizationUser(t, env.db, "admin@example.com")
	org := seedOrganizationWithPin(t, env.db, "1234")
	seedMembership(t, env.db, org.ID, admin.ID, models.RoleAdmin)

	prompt := seedPrompt(t, env.db, org.ID, admin.ID)

	deletePrompt := func(pin string) *httptest.ResponseRecorder {
		body, err := json.Marshal(map[string]string{"pin": pin})
		require.NoError(t, err)

		c, w := promptTestContext(http.MethodDelete, "/api/organizations/1/prompts/1", body, admin.ID, *org)
		c.Params = gin.Params{{Key: "prompt_id", Value: strconv.FormatUint(prompt.ID, 10)}}

		env.handler.DeletePrompt(c)
		return w
	}

	w := deletePrompt("0000")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "PIN_REJECTED")

	var count int64
	env.db.Model(&models.Prompt{}).Where("id = ?", prompt.ID).Count(&count)
	require.EqualValues(t, 1, count)

	w = deletePrompt("1234")
	require.Equal(t, http.StatusOK, w.Code)

	env.db.Model(&models.Prompt{}).Where("id = ?", prompt.ID).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestPromptHandler_DeletePrompt_MemberDenied(t *testing.T) {
	env := setupPromptTestEnv(t)

	member := createTestOrganizationUser(t, env.db, "member@example.com")
	org := seedOrganizationWithPin(t, env.db, "1234")
	seedMembership(t, env.db, org.ID, member.ID, models.RoleMember)

	prompt := seedPrompt(t, env.db, org.ID, member.ID)

	body, err := json.Marshal(map[string]string{"pin": "1234"})
	require.NoError(t, err)

	c, w := promptTestContext(http.MethodDelete, "/api/organizations/1/prompts/1", body, member.ID, *org)
	c.Params = gin.Params{{Key: "prompt_id", Value: strconv.FormatUint(prompt.ID, 10)}}

	env.handler.DeletePrompt(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "INSUFFICIENT_ROLE")
}

func TestPromptHandler_DraftPrompt_NotConfigured(t *testing.T) {
	env := setupPromptTestEnv(t)

	user := createTestOrganizationUser(t, env.db, "writer@example.com")
	org := seedOrganizationWithPin(t, env.db, "")
	seedMembership(t, env.db, org.ID, user.ID, models.RoleMember)

	body, err := json.Marshal(map[string]string{
		"subject": "Quarterly review reminder",
		"tone":    "formal",
	})
	require.NoError(t, err)

	c, w := promptTestContext(http.MethodPost, "/api/organizations/1/prompts/draft", body, user.ID, *org)

	env.handler.DraftPrompt(c)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

package util

import (
	"net/http/httptest"
	"testing"
	"time"

	"hirehub_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	recruiter := &model.Recruiter{
		BaseModel: model.BaseModel{ID: 42},
		Email:     "anna@hirehub.io",
		Role:      model.RoleAdmin,
	}

	token, err := GenerateJWT(recruiter, "unit-test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "unit-test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.RecruiterID)
	assert.Equal(t, "anna@hirehub.io", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	recruiter := &model.Recruiter{BaseModel: model.BaseModel{ID: 7}, Email: "bob@hirehub.io", Role: model.RoleRecruiter}

	token, err := GenerateJWT(recruiter, "real-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	recruiter := &model.Recruiter{BaseModel: model.BaseModel{ID: 7}, Email: "bob@hirehub.io", Role: model.RoleRecruiter}

	token, err := GenerateJWT(recruiter, "real-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "real-secret")
	assert.Error(t, err)
}

func TestGetRecruiterFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetRecruiterFromContext(ctx))

	claims := &Claims{RecruiterID: 3, Email: "carol@hirehub.io", Role: model.RoleRecruiter}
	ctx.Set("recruiter", claims)
	got := GetRecruiterFromContext(ctx)
	require.NotNil(t, got)
	assert.Equal(t, uint(3), got.RecruiterID)
}

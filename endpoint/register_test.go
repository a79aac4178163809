package endpoint_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediconnect/mediconnect-api/model"
	"github.com/mediconnect/mediconnect-api/util"
)

func TestRegisterStoresHashedPassword(t *testing.T) {
	r, db := newTestRouter(t)

	rr := doJSON(r, http.MethodPost, "/register", map[string]string{
		"name":     "Sam Fernando",
		"gmail":    "sam@gmail.com",
		"password": "Str0ng?Pass1",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var account model.Register
	require.NoError(t, db.Where("gmail = ?", "sam@gmail.com").First(&account).Error)
	assert.NotEqual(t, "Str0ng?Pass1", account.Password, "plaintext storage is a defect")
	assert.True(t, strings.HasPrefix(account.Password, "argon2id$"))

	match, err := util.VerifyPassword("Str0ng?Pass1", account.Password)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestRegisterDuplicateGmail(t *testing.T) {
	r, _ := newTestRouter(t)

	body := map[string]string{"name": "Sam", "gmail": "dup@gmail.com", "password": "Str0ng?Pass1"}
	rr := doJSON(r, http.MethodPost, "/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(r, http.MethodPost, "/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeResp(t, rr)
	assert.Equal(t, "gmail", resp.Field)
	assert.Equal(t, "email is already registered", resp.Message)
}

func TestLoginRegister(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(r, http.MethodPost, "/register", map[string]string{
		"name": "Sam", "gmail": "login@gmail.com", "password": "Str0ng?Pass1",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	t.Run("correct credentials", func(t *testing.T) {
		rr := doJSON(r, http.MethodPost, "/login", map[string]string{
			"gmail": "login@gmail.com", "password": "Str0ng?Pass1",
		}, "")
		assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := doJSON(r, http.MethodPost, "/login", map[string]string{
			"gmail": "login@gmail.com", "password": "Wr0ng?Pass1",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResp(t, rr)
		assert.Equal(t, "Invalid credentials", resp.Message)
	})

	t.Run("unknown account", func(t *testing.T) {
		rr := doJSON(r, http.MethodPost, "/login", map[string]string{
			"gmail": "nobody@gmail.com", "password": "Str0ng?Pass1",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResp(t, rr)
		assert.Equal(t, "Invalid credentials", resp.Message)
	})
}

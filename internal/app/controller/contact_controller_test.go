package controller

import (
	"net/http"
	"testing"

	"github.com/mallow/storefront/internal/app/model"
	"github.com/mallow/storefront/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactController_SubmitMessage(t *testing.T) {
	f := setupControllerTest(t)

	w := f.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Sanne",
		"email":   "sanne@example.com",
		"subject": "Vraag",
		"message": "Is de honingbalsem geschikt voor kinderen?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var msg model.ContactMessage
	decode(t, w, &msg)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Vraag", msg.Subject)

	var count int64
	require.NoError(t, f.db.Model(&model.ContactMessage{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestContactController_SubmitMessage_Invalid(t *testing.T) {
	f := setupControllerTest(t)

	w := f.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Sanne",
		"email":   "geen-adres",
		"message": "hoi",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/contact", map[string]string{"name": "Sanne"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactController_Subscribe(t *testing.T) {
	f := setupControllerTest(t)

	w := f.do(t, http.MethodPost, "/api/subscribe", map[string]string{"email": "sanne@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"`+service.SubscribeWelcomeMessage+`"}`, w.Body.String())

	w = f.do(t, http.MethodPost, "/api/subscribe", map[string]string{"email": "sanne@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"`+service.SubscribeRepeatMessage+`"}`, w.Body.String())

	w = f.do(t, http.MethodPost, "/api/subscribe", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Ongeldig e-mailadres", detail(t, w))
}

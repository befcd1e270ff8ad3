package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clip-automator/config"
	"clip-automator/internal/response"
	apperrors "clip-automator/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateConfig_RejectedUpdateKeepsPreviousConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	original := config.Conf
	t.Cleanup(func() { config.Conf = original })
	config.Conf.Clip = config.ClipConfig{
		MinDurationSec:    30,
		MaxDurationSec:    90,
		TargetDurationSec: 60,
		Count:             5,
	}

	router := gin.New()
	h := &Handler{}
	router.POST("/api/config", h.UpdateConfig)

	body := `{"Clip":{"MinDurationSec":500,"MaxDurationSec":90,"TargetDurationSec":60,"Count":5}}`
	req, _ := http.NewRequest("POST", "/api/config", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int32(apperrors.CodeInvalidParams), resp.Error)

	// The in-memory config keeps serving the last valid values.
	assert.Equal(t, 30.0, config.Conf.Clip.MinDurationSec)
	assert.Equal(t, 90.0, config.Conf.Clip.MaxDurationSec)
}

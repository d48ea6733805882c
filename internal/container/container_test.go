package container

import (
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"expiry-scanner/config"
	"expiry-scanner/internal/domain/entity"
	"expiry-scanner/internal/infrastructure/indicator"
)

func writePNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pack.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 8, 8))))
	require.NoError(t, f.Close())
	return path
}

func dryRunConfig(t *testing.T, geminiURL string) *config.Config {
	cfg := config.Default()
	cfg.Camera.Driver = config.CaptureFile
	cfg.Camera.StreamAddress = writePNG(t)
	cfg.Gemini.ServiceCredential = "test-key"
	cfg.Gemini.Endpoint = geminiURL + "/"
	cfg.Indicator.Driver = config.IndicatorLog
	cfg.Indicator.HoldDurationSeconds = 0
	require.NoError(t, cfg.Validate())
	return &cfg
}

func TestContainer_DryRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"NOT FOUND"}]}}]}`))
	}))
	defer server.Close()

	c, err := New(context.Background(), dryRunConfig(t, server.URL), nil)
	require.NoError(t, err)
	defer c.Close()

	result, err := c.InspectionService.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, entity.ShelfLifeUnparseable, result.ShelfLife)
	require.ErrorIs(t, result.ParseErr, entity.ErrParseFailure)
}

func TestContainer_ExtractionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
	}))
	defer server.Close()

	c, err := New(context.Background(), dryRunConfig(t, server.URL), nil)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.InspectionService.Run(context.Background())
	require.ErrorIs(t, err, entity.ErrExtraction)
}

func TestContainer_TelegramDownStillRuns(t *testing.T) {
	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"07/2026"}]}}]}`))
	}))
	defer gemini.Close()

	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer tg.Close()

	cfg := dryRunConfig(t, gemini.URL)
	cfg.Telegram.Token = "123:revoked"
	cfg.Telegram.ChatID = 42
	cfg.Telegram.Endpoint = tg.URL + "/bot%s/%s"

	c, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer c.Close()

	result, err := c.InspectionService.Run(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, entity.ShelfLifeUnparseable, result.ShelfLife)
}

func TestNewSignalPanel_SharedLine(t *testing.T) {
	driver := indicator.NewLogDriver(nil)
	panel, err := newSignalPanel(driver, config.Default().Indicator.Lines, nil)
	require.NoError(t, err)

	require.NoError(t, panel.Hold(context.Background(), entity.ShelfLifeUnparseable, 0))
	require.Empty(t, driver.Active())
}

func TestNewFrameSource_UnknownDriver(t *testing.T) {
	_, err := newFrameSource(config.CameraConfig{Driver: "v4l"})
	require.Error(t, err)
}

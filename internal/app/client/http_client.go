package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"inkboard/internal/app/client/config"
	"inkboard/internal/domain/element"
	"inkboard/internal/domain/geometry"
)

type httpClient struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  false,
			DisableKeepAlives:   false,
			MaxIdleConnsPerHost: 10,
		},
	}

	// Определяем протокол
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}
	baseURL := scheme + cfg.ServerAddress

	return &httpClient{
		client:    client,
		config:    cfg,
		log:       log,
		baseURL:   baseURL,
		userAgent: "Inkboard-Client/1.0",
	}, nil
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", h.baseURL+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}

	return nil
}

// ListElements возвращает элементы доски. Если viewport задан, сервер
// вернет только элементы, чья точка привязки попадает в него.
func (h *httpClient) ListElements(ctx context.Context, vp *geometry.Viewport) (element.ListResult, error) {
	path := "/api/v1/elements"
	if vp != nil {
		query := url.Values{}
		query.Set("x", formatFloat(vp.X))
		query.Set("y", formatFloat(vp.Y))
		query.Set("width", formatFloat(vp.Width))
		query.Set("height", formatFloat(vp.Height))
		query.Set("zoom", formatFloat(vp.Zoom))
		path += "?" + query.Encode()
	}

	resp, err := h.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return element.ListResult{}, err
	}

	var result element.ListResult
	if err := h.parseResponse(resp, &result); err != nil {
		return element.ListResult{}, err
	}

	return result, nil
}

// GetElement возвращает элемент по id
func (h *httpClient) GetElement(ctx context.Context, id uuid.UUID) (*element.Element, error) {
	resp, err := h.doRequest(ctx, "GET", "/api/v1/elements/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	return h.parseElementResponse(resp)
}

// CreateTextNote создает заметку на сервере
func (h *httpClient) CreateTextNote(ctx context.Context, draft TextNoteDraft) (*element.Element, error) {
	resp, err := h.doRequest(ctx, "POST", "/api/v1/elements/text-notes", draft)
	if err != nil {
		return nil, err
	}

	return h.parseElementResponse(resp)
}

// CreateDrawing создает рисунок на сервере
func (h *httpClient) CreateDrawing(ctx context.Context, draft DrawingDraft) (*element.Element, error) {
	resp, err := h.doRequest(ctx, "POST", "/api/v1/elements/drawings", draft)
	if err != nil {
		return nil, err
	}

	return h.parseElementResponse(resp)
}

// UpdateTextNote частично обновляет заметку
func (h *httpClient) UpdateTextNote(ctx context.Context, id uuid.UUID, patch TextNotePatchRequest) (*element.Element, error) {
	resp, err := h.doRequest(ctx, "PATCH", "/api/v1/elements/text-notes/"+id.String(), patch)
	if err != nil {
		return nil, err
	}

	return h.parseElementResponse(resp)
}

// UpdateDrawing частично обновляет рисунок
func (h *httpClient) UpdateDrawing(ctx context.Context, id uuid.UUID, patch DrawingPatchRequest) (*element.Element, error) {
	resp, err := h.doRequest(ctx, "PATCH", "/api/v1/elements/drawings/"+id.String(), patch)
	if err != nil {
		return nil, err
	}

	return h.parseElementResponse(resp)
}

// DeleteElement удаляет элемент и возвращает его последнее состояние
func (h *httpClient) DeleteElement(ctx context.Context, id uuid.UUID) (*element.Element, error) {
	resp, err := h.doRequest(ctx, "DELETE", "/api/v1/elements/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	return h.parseElementResponse(resp)
}

// BulkUpdate применяет пакет перемещений одной транзакцией
func (h *httpClient) BulkUpdate(ctx context.Context, items []element.BulkUpdateItem) ([]element.Element, error) {
	req := struct {
		Updates []element.BulkUpdateItem `json:"updates"`
	}{
		Updates: items,
	}

	resp, err := h.doRequest(ctx, "POST", "/api/v1/elements/bulk-update", req)
	if err != nil {
		return nil, err
	}

	var result struct {
		Status   string            `json:"status"`
		Elements []element.Element `json:"elements"`
		Error    string            `json:"error,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}

	return result.Elements, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"body", string(body),
	)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Error != "" {
				return fmt.Errorf("ошибка сервера: %s", errResp.Error)
			}
			if errResp.Detail != "" {
				return fmt.Errorf("ошибка сервера: %s", errResp.Detail)
			}
		}
		return fmt.Errorf("ошибка сервера: статус %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

func (h *httpClient) parseElementResponse(resp *http.Response) (*element.Element, error) {
	var result struct {
		Status  string           `json:"status"`
		Element *element.Element `json:"element"`
		Error   string           `json:"error,omitempty"`
	}

	if err := h.parseResponse(resp, &result); err != nil {
		return nil, err
	}

	if result.Element == nil {
		return nil, fmt.Errorf("сервер вернул пустой элемент")
	}

	return result.Element, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

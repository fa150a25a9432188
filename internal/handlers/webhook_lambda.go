// Package handlers provides HTTP handlers for the voucher distribution service.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jonboulle/clockwork"

	appConfig "github.com/davmoha/voucher-automation/internal/config"
	"github.com/davmoha/voucher-automation/internal/models"
	"github.com/davmoha/voucher-automation/internal/services/database"
	"github.com/davmoha/voucher-automation/internal/services/distributor"
	"github.com/davmoha/voucher-automation/internal/services/ses"
	"github.com/davmoha/voucher-automation/internal/utils"
)

// WinnerWebhookHandler adapts the distribution workflow to API Gateway.
type WinnerWebhookHandler struct {
	distributor Distributor
	db          *database.DB
}

// NewWinnerWebhookHandler wires the full workflow for the Lambda deployment:
// config, database pool, SES client, and the distribution service.
func NewWinnerWebhookHandler(ctx context.Context) (*WinnerWebhookHandler, error) {
	cfg, err := appConfig.Load()
	if err != nil {
		return nil, err
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	mailer, err := ses.NewService(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	dist := distributor.NewService(
		database.NewClassRepository(db),
		database.NewVoucherRepository(db),
		database.NewDistributionRepository(db),
		mailer,
		clockwork.NewRealClock(),
		utils.GetLogger(),
	)

	return &WinnerWebhookHandler{distributor: dist, db: db}, nil
}

// Handle processes API Gateway winner webhook requests.
func (h *WinnerWebhookHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Allow-Methods": "POST,OPTIONS",
		"Content-Type":                 "application/json",
	}

	// Handle CORS preflight
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	var event models.WinnerEvent
	if err := json.Unmarshal([]byte(request.Body), &event); err != nil {
		return lambdaJSON(headers, http.StatusBadRequest, errorBody{Error: "Invalid JSON in request body"})
	}

	result, err := h.distributor.Distribute(ctx, &event)
	if err != nil {
		status, body := distributionError(err)
		return lambdaJSON(headers, status, body)
	}

	return lambdaJSON(headers, http.StatusOK, winnerResponse{
		Success:     true,
		VoucherCode: result.VoucherCode,
		ClassDate:   result.ClassDate.Format("2006-01-02"),
		EmailSent:   result.EmailSent,
	})
}

// Close cleans up resources.
func (h *WinnerWebhookHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}

// lambdaJSON marshals a body into an API Gateway response.
func lambdaJSON(headers map[string]string, status int, body interface{}) (events.APIGatewayProxyResponse, error) {
	payload, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(payload),
	}, nil
}

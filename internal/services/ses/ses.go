// Package ses provides email notification services via AWS SES
package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "github.com/davmoha/voucher-automation/internal/config"
	"github.com/davmoha/voucher-automation/internal/utils"
)

// Service handles SES email operations
type Service struct {
	client        *ses.Client
	senderEmail   string
	operatorEmail string
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

// NewService creates a new SES service
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(appCfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:        ses.NewFromConfig(cfg),
		senderEmail:   appCfg.SenderEmail,
		operatorEmail: appCfg.OperatorAlertEmail,
	}, nil
}

// SendEmail sends a basic email
func (s *Service) SendEmail(ctx context.Context, params EmailParams) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.senderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.ReplyTo != "" {
		input.ReplyToAddresses = []string{params.ReplyTo}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	utils.GetLogger().Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", aws.ToString(result.MessageId)),
	)

	return nil
}

// SendVoucherEmail sends the winner their voucher and class details.
func (s *Service) SendVoucherEmail(ctx context.Context, params VoucherEmailParams) error {
	htmlBody, err := renderVoucherHTML(params)
	if err != nil {
		return fmt.Errorf("failed to render voucher email: %w", err)
	}

	return s.SendEmail(ctx, EmailParams{
		To:       params.To,
		Subject:  voucherSubject(params),
		HTMLBody: htmlBody,
		TextBody: renderVoucherText(params),
	})
}

// SendOperatorAlert sends a fire-and-forget notification to the operator
// address. The error is returned for logging but callers must never let it
// change the outcome of the triggering request.
func (s *Service) SendOperatorAlert(ctx context.Context, subject, body string) error {
	return s.SendEmail(ctx, EmailParams{
		To:       s.operatorEmail,
		Subject:  subject,
		TextBody: body,
	})
}

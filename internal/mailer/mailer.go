// internal/mailer/mailer.go
package mailer

import (
    "context"
    "fmt"
    "log"

    "github.com/aws/aws-sdk-go-v2/aws"
    "github.com/aws/aws-sdk-go-v2/credentials"
    "github.com/aws/aws-sdk-go-v2/service/ses"
    "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer is the outbound mail transport. A failed Send for one
// recipient never affects another; the delivery loop handles the
// classification.
type Mailer interface {
    Send(to, subject, html string) error
}

// Config selects and configures the transport.
type Config struct {
    Provider    string
    FromAddress string
    FromName    string

    AWSRegion          string
    AWSAccessKeyID     string
    AWSSecretAccessKey string
}

// New creates a mailer from config. Provider "ses" uses AWS SES;
// "noop" or unknown uses a no-op mailer that only logs.
func New(cfg Config) (Mailer, error) {
    switch cfg.Provider {
    case "ses":
        awsCfg := aws.Config{
            Region: cfg.AWSRegion,
            Credentials: aws.NewCredentialsCache(
                credentials.NewStaticCredentialsProvider(
                    cfg.AWSAccessKeyID,
                    cfg.AWSSecretAccessKey,
                    "",
                ),
            ),
        }
        return &sesMailer{
            client:      ses.NewFromConfig(awsCfg),
            fromAddress: cfg.FromAddress,
            fromName:    cfg.FromName,
        }, nil
    case "noop":
        return &noopMailer{}, nil
    default:
        log.Printf("⚠️ Unknown mail provider %q, using noop", cfg.Provider)
        return &noopMailer{}, nil
    }
}

type sesMailer struct {
    client      *ses.Client
    fromAddress string
    fromName    string
}

func (s *sesMailer) Send(to, subject, html string) error {
    source := s.fromAddress
    if s.fromName != "" {
        source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
    }
    input := &ses.SendEmailInput{
        Source: aws.String(source),
        Destination: &types.Destination{
            ToAddresses: []string{to},
        },
        Message: &types.Message{
            Subject: &types.Content{
                Data:    aws.String(subject),
                Charset: aws.String("UTF-8"),
            },
            Body: &types.Body{
                Html: &types.Content{
                    Data:    aws.String(html),
                    Charset: aws.String("UTF-8"),
                },
            },
        },
    }
    result, err := s.client.SendEmail(context.Background(), input)
    if err != nil {
        return fmt.Errorf("failed to send email via SES: %w", err)
    }
    log.Printf("✅ Email sent via SES to %s (MessageID: %s)", to, aws.ToString(result.MessageId))
    return nil
}

type noopMailer struct{}

func (n *noopMailer) Send(to, subject, html string) error {
    log.Println("📧 Email would be sent (noop) to", to, "subject:", subject)
    return nil
}

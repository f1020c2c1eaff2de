package notifier

import (
	"context"
	"fmt"
	"log"

	"app/internal/domain/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailChannel sends through AWS SES. An empty sender address switches
// to log-only delivery, and customers without an email are skipped.
type EmailChannel struct {
	region      string
	accessKey   string
	secretKey   string
	senderEmail string
}

func NewEmailChannel(region, accessKey, secretKey, senderEmail string) *EmailChannel {
	return &EmailChannel{
		region:      region,
		accessKey:   accessKey,
		secretKey:   secretKey,
		senderEmail: senderEmail,
	}
}

func (e *EmailChannel) Send(ctx context.Context, customer model.Customer, message string) error {
	if customer.Email == "" {
		return nil
	}

	if e.senderEmail == "" {
		log.Printf("Email simulé vers %s: %s", customer.Email, message)
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(e.region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(e.accessKey, e.secretKey, "")),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	subject := "Mise à jour de votre commande"
	body := fmt.Sprintf("Bonjour %s,\n\n%s\n\nMerci pour votre confiance.", customer.Name, message)

	input := &ses.SendEmailInput{
		Source: aws.String(e.senderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{customer.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(body),
				},
			},
		},
	}

	if _, err := client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

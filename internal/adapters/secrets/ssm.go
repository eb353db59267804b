// Package secrets resolves the upstream API key for sync runs.
package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"tickx/internal/domain"
)

// SSMAPI is the slice of the SSM client the provider depends on.
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type ssmProvider struct {
	client    SSMAPI
	paramName string
}

// NewSSMProvider returns an APIKeyProvider reading a SecureString parameter.
func NewSSMProvider(client SSMAPI, paramName string) domain.APIKeyProvider {
	return &ssmProvider{client: client, paramName: paramName}
}

func (p *ssmProvider) APIKey(ctx context.Context) (string, error) {
	resp, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(p.paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", p.paramName, err)
	}
	if resp.Parameter == nil || resp.Parameter.Value == nil || *resp.Parameter.Value == "" {
		return "", fmt.Errorf("parameter %s is empty", p.paramName)
	}
	return *resp.Parameter.Value, nil
}

type staticProvider struct {
	key string
}

// NewStaticProvider returns an APIKeyProvider for a key supplied directly
// (local development).
func NewStaticProvider(key string) domain.APIKeyProvider {
	return &staticProvider{key: key}
}

func (p *staticProvider) APIKey(ctx context.Context) (string, error) {
	if p.key == "" {
		return "", fmt.Errorf("no api key configured")
	}
	return p.key, nil
}

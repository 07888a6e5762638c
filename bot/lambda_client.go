package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog/log"
)

type invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaClient sends solve requests to the solver deployed as an AWS
// Lambda function (see cmd/lambda).
type LambdaClient struct {
	client   invoker
	function string
}

// NewLambdaClient uses the default AWS credential chain.
func NewLambdaClient(ctx context.Context, function string) (*LambdaClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &LambdaClient{client: lambda.NewFromConfig(cfg), function: function}, nil
}

type lambdaError struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

func (c *LambdaClient) RequestSolve(ctx context.Context, req *SolveRequest) (*SolveResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	out, err := c.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(c.function),
		Payload:      payload,
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Int32("status", out.StatusCode).Int("bytes", len(out.Payload)).Msg("lambda response")
	if out.FunctionError != nil {
		le := lambdaError{}
		if err := json.Unmarshal(out.Payload, &le); err != nil || le.ErrorMessage == "" {
			return nil, fmt.Errorf("lambda %v failed: %v", c.function, aws.ToString(out.FunctionError))
		}
		return nil, errors.New("lambda returned: " + le.ErrorMessage)
	}
	resp := SolveResponse{}
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

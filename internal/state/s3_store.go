package state

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/hemantobora/vmapp/internal/models"
	"github.com/hemantobora/vmapp/internal/naming"
)

// S3Store implements the Store interface using AWS S3. One bucket per app,
// deterministic name, so the reconciliation engine can find the plans
// without extra coordination.
type S3Store struct {
	client     *s3.Client
	awsConfig  aws.Config
	region     string
	bucketName string
}

// LoadAWSConfig loads AWS configuration with an optional shared profile.
func LoadAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	optFns := []func(*config.LoadOptions) error{}
	if profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return aws.Config{}, &models.ProviderError{
			Provider:  "aws",
			Operation: "load-config",
			Resource:  fmt.Sprintf("profile:%s", profile),
			Cause:     fmt.Errorf("failed to load AWS config: %w", err),
		}
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return cfg, nil
}

// ValidateCredentials checks that AWS credentials resolve to an identity.
func ValidateCredentials(ctx context.Context, profile string) (bool, error) {
	cfg, err := LoadAWSConfig(ctx, profile)
	if err != nil {
		return false, err
	}
	client := sts.NewFromConfig(cfg)
	if _, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{}); err != nil {
		return false, err
	}
	return true, nil
}

// NewS3Store creates the plan store for an app, creating the artifact
// bucket if it does not exist yet.
func NewS3Store(ctx context.Context, app, profile string) (*S3Store, error) {
	cfg, err := LoadAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}
	store := &S3Store{
		client:     s3.NewFromConfig(cfg),
		awsConfig:  cfg,
		region:     cfg.Region,
		bucketName: naming.Bucket(app),
	}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// BucketName returns the artifact bucket backing this store.
func (s *S3Store) BucketName() string { return s.bucketName }

// ensureBucket makes sure the artifact bucket exists and that the client is
// bound to the bucket's actual region (avoids 301 PermanentRedirect on
// PutObject).
func (s *S3Store) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err == nil {
		return s.alignRegion(ctx)
	}

	var input *s3.CreateBucketInput
	if s.region == "us-east-1" {
		input = &s3.CreateBucketInput{Bucket: aws.String(s.bucketName)}
	} else {
		input = &s3.CreateBucketInput{
			Bucket: aws.String(s.bucketName),
			CreateBucketConfiguration: &s3types.CreateBucketConfiguration{
				LocationConstraint: s3types.BucketLocationConstraint(s.region),
			},
		}
	}

	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "BucketAlreadyOwnedByYou":
				return s.alignRegion(ctx)
			case "BucketAlreadyExists":
				return &models.ProviderError{
					Provider:  "aws",
					Operation: "init",
					Resource:  s.bucketName,
					Cause:     fmt.Errorf("bucket name '%s' already taken globally, choose a more unique app name", s.bucketName),
				}
			}
		}
		return &models.ProviderError{
			Provider:  "aws",
			Operation: "init",
			Resource:  s.bucketName,
			Cause:     fmt.Errorf("failed to create bucket: %w", err),
		}
	}
	return nil
}

// alignRegion rebinds the S3 client to the bucket's real region.
func (s *S3Store) alignRegion(ctx context.Context) error {
	loc, err := s.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(s.bucketName),
	})
	if err != nil {
		return nil // best effort; the bucket is reachable already
	}
	resolved := string(loc.LocationConstraint)
	if resolved == "" { // us-east-1 returns empty per API
		resolved = "us-east-1"
	}
	if resolved != s.region {
		cfg := s.awsConfig
		cfg.Region = resolved
		s.client = s3.NewFromConfig(cfg)
		s.region = resolved
	}
	return nil
}

func (s *S3Store) SavePlan(ctx context.Context, app string, plan *Plan) error {
	if err := ValidatePlan(plan); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}
	data, err := marshalPlan(plan)
	if err != nil {
		return err
	}
	if err := s.putObject(ctx, currentKey(app), data); err != nil {
		return fmt.Errorf("failed to save current plan: %w", err)
	}
	if err := s.putObject(ctx, versionKey(app, plan.Metadata.Version), data); err != nil {
		// Current plan is saved; the versioned copy is best effort.
		fmt.Printf("Warning: failed to save plan version %s: %v\n", plan.Metadata.Version, err)
	}
	return nil
}

func (s *S3Store) GetPlan(ctx context.Context, app string) (*Plan, error) {
	return s.getPlan(ctx, currentKey(app))
}

func (s *S3Store) GetPlanVersion(ctx context.Context, app, version string) (*Plan, error) {
	return s.getPlan(ctx, versionKey(app, version))
}

func (s *S3Store) DeletePlan(ctx context.Context, app string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(currentKey(app)),
	})
	if err != nil {
		return &models.ProviderError{
			Provider:  "aws",
			Operation: "delete",
			Resource:  s.bucketName,
			Cause:     err,
		}
	}
	return nil
}

func (s *S3Store) getPlan(ctx context.Context, key string) (*Plan, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get plan from S3: %w", err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan data: %w", err)
	}
	return unmarshalPlan(data)
}

func (s *S3Store) putObject(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	return err
}

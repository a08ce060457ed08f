package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"khadija-recipes/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

var (
	AllowImage = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrStorageDisabled    = errors.New("object storage is not configured")
)

type (
	AwsS3 interface {
		UploadFile(fileName string, file *multipart.FileHeader, folder string, allowType ...string) (string, error)
		UpdateFile(objectKey string, file *multipart.FileHeader, allowType ...string) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" || region == "" {
		log.Warn("AWS_S3_BUCKET or AWS_S3_REGION missing, uploads are disabled")
		return New(nil, bucket, region)
	}

	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Errorf("error loading aws config: %v", err)
		return New(nil, bucket, region)
	}
	return New(s3.NewFromConfig(cfg), bucket, region)
}

// New wraps an existing client. A nil client keeps link helpers working
// while every write returns ErrStorageDisabled.
func New(client *s3.Client, bucket, region string) AwsS3 {
	return &awsS3{client: client, bucket: bucket, region: region}
}

// UploadFile stores file under <folder>/<fileName><ext> and returns the
// object key.
func (a *awsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowType ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowType) > 0 && !slices.Contains(allowType, ext) {
		return "", ErrFileTypeNotAllowed
	}
	objectKey := path.Join(folder, fileName+ext)
	if err := a.put(objectKey, file); err != nil {
		return "", err
	}
	return objectKey, nil
}

// UpdateFile overwrites an existing object, keeping its key.
func (a *awsS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowType ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowType) > 0 && !slices.Contains(allowType, ext) {
		return "", ErrFileTypeNotAllowed
	}
	if err := a.put(objectKey, file); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) put(objectKey string, file *multipart.FileHeader) error {
	if a.client == nil {
		return ErrStorageDisabled
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        src,
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	return err
}

func (a *awsS3) DeleteFile(objectKey string) error {
	if a.client == nil {
		return ErrStorageDisabled
	}
	_, err := a.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) baseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
}

// GetPublicLinkKey returns the public URL of objectKey. Absolute URLs and
// empty keys pass through unchanged.
func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	if objectKey == "" || strings.HasPrefix(objectKey, "http://") || strings.HasPrefix(objectKey, "https://") {
		return objectKey
	}
	return a.baseURL() + strings.TrimPrefix(objectKey, "/")
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, a.baseURL()) {
		return ""
	}
	return strings.TrimPrefix(link, a.baseURL())
}

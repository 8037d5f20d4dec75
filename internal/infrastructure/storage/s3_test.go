package storage

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type stubS3 struct {
	s3iface.S3API
	lastPut    *s3.PutObjectInput
	lastBody   []byte
	lastDelete *s3.DeleteObjectInput
}

func (f *stubS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	f.lastPut = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.lastBody = body
	return &s3.PutObjectOutput{}, nil
}

func (f *stubS3) DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.lastDelete = input
	return &s3.DeleteObjectOutput{}, nil
}

type S3StoreTestSuite struct {
	suite.Suite
	stub  *stubS3
	store *S3Store
}

func (s *S3StoreTestSuite) SetupTest() {
	s.stub = &stubS3{}
	s.store = &S3Store{
		client:  s.stub,
		bucket:  "recipe-images",
		baseURL: "https://cdn.example.com",
		logger:  zap.NewNop(),
	}
}

func (s *S3StoreTestSuite) TestUploadReturnsPublicURL() {
	url, err := s.store.Upload(context.Background(), "recipes/bolo.png", []byte("png-bytes"), "image/png")
	s.Require().NoError(err)

	s.Equal("https://cdn.example.com/recipes/bolo.png", url)
	s.Equal("recipe-images", aws.StringValue(s.stub.lastPut.Bucket))
	s.Equal("recipes/bolo.png", aws.StringValue(s.stub.lastPut.Key))
	s.Equal("image/png", aws.StringValue(s.stub.lastPut.ContentType))
	s.Equal([]byte("png-bytes"), s.stub.lastBody)
}

func (s *S3StoreTestSuite) TestUploadTrimsLeadingSlash() {
	url, err := s.store.Upload(context.Background(), "/avatars/u1.png", []byte("x"), "image/png")
	s.Require().NoError(err)

	s.Equal("avatars/u1.png", aws.StringValue(s.stub.lastPut.Key))
	s.Equal("https://cdn.example.com/avatars/u1.png", url)
}

func (s *S3StoreTestSuite) TestDelete() {
	err := s.store.Delete(context.Background(), "recipes/bolo.png")
	s.Require().NoError(err)

	s.Equal("recipes/bolo.png", aws.StringValue(s.stub.lastDelete.Key))
}

func (s *S3StoreTestSuite) TestFallbackURLWithoutBase() {
	s.store.baseURL = ""
	s.Equal("https://recipe-images.s3.amazonaws.com/recipes/a.png", s.store.URL("recipes/a.png"))
}

func TestS3StoreTestSuite(t *testing.T) {
	suite.Run(t, new(S3StoreTestSuite))
}

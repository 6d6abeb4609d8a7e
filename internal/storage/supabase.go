package storage

import (
	"bytes"
	"fmt"
	"strings"

	storagego "github.com/supabase-community/storage-go"

	"baudok-backend/internal/models"
)

// SupabaseStore keeps blobs in a Supabase Storage bucket, one object per
// entity id under the media/ prefix.
type SupabaseStore struct {
	client *storagego.Client
	bucket string
}

func NewSupabaseStore(supabaseURL, apiKey, bucket string) (*SupabaseStore, error) {
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storagego.NewClient(baseURL+"/storage/v1", apiKey, nil)

	return &SupabaseStore{
		client: client,
		bucket: bucket,
	}, nil
}

func objectPath(id string) string {
	return "media/" + id
}

func (s *SupabaseStore) Put(id string, data []byte, contentType string) error {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, objectPath(id), bytes.NewReader(data), storagego.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload blob: %w", err)
	}
	return nil
}

func (s *SupabaseStore) Get(id string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, objectPath(id))
	if err != nil {
		if strings.Contains(err.Error(), "not_found") || strings.Contains(err.Error(), "404") {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to download blob: %w", err)
	}
	return data, nil
}

func (s *SupabaseStore) Delete(id string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{objectPath(id)})
	return err
}

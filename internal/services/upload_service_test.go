package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ozanatli/microsite-backend/internal/services"
)

type fakeUploader struct {
	mu    sync.Mutex
	calls int
	fail  string
}

func (f *fakeUploader) Upload(_ context.Context, filename string, _ []byte) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if filename == f.fail {
		return "", errors.New("upload rejected")
	}
	return fmt.Sprintf("https://cdn.example/%s", filename), nil
}

func TestUploadAll_PreservesInputOrder(t *testing.T) {
	up := &fakeUploader{}
	files := []services.UploadFile{
		{Name: "a.png", Data: []byte{1}},
		{Name: "b.png", Data: []byte{2}},
		{Name: "c.png", Data: []byte{3}},
	}

	urls, err := services.UploadAll(context.Background(), up, files)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://cdn.example/a.png",
		"https://cdn.example/b.png",
		"https://cdn.example/c.png",
	}, urls)
	require.Equal(t, 3, up.calls)
}

func TestUploadAll_OneFailureAbortsBatch(t *testing.T) {
	up := &fakeUploader{fail: "b.png"}
	files := []services.UploadFile{
		{Name: "a.png"},
		{Name: "b.png"},
	}

	urls, err := services.UploadAll(context.Background(), up, files)
	require.Error(t, err)
	require.Nil(t, urls)
}

func TestUploadAll_Empty(t *testing.T) {
	urls, err := services.UploadAll(context.Background(), &fakeUploader{}, nil)
	require.NoError(t, err)
	require.Empty(t, urls)
}

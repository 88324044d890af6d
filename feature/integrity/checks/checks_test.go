package checks

import (
	"context"
	"errors"
	"testing"

	"catalog-manager/core/datastore"
	"catalog-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var folders = map[string]string{"items": "items", "catalogs": "catalogs"}

func TestCheckStructure(t *testing.T) {
	t.Run("All Missing", func(t *testing.T) {
		store := datastore.NewFSStore(afero.NewMemMapFs(), "data")
		missing, err := CheckStructure(context.Background(), store, folders)
		require.NoError(t, err)
		assert.Equal(t, []string{"catalogs", "items"}, missing)
	})

	t.Run("Bucket", func(t *testing.T) {
		client := new(mocks.Client)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Key: "data/items/base.json"}
		close(ch)
		empty := make(chan minio.ObjectInfo)
		close(empty)
		client.On("ListObjects", mock.Anything, "assets", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
			return o.Prefix == "data/items/"
		})).Return((<-chan minio.ObjectInfo)(ch))
		client.On("ListObjects", mock.Anything, "assets", mock.Anything).Return((<-chan minio.ObjectInfo)(empty))

		store := datastore.NewBucketStore(client, "assets", "data")
		missing, err := CheckStructure(context.Background(), store, folders)
		require.NoError(t, err)
		assert.Equal(t, []string{"catalogs"}, missing)
	})
}

func TestFixStructure(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := datastore.NewFSStore(fs, "data")

	require.NoError(t, FixStructure(context.Background(), store, folders, zap.NewNop(), []string{"items"}))
	data, err := afero.ReadFile(fs, "data/items/items.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items": []}`, string(data))
}

func TestCheckDataFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/items/a.json", []byte("ok"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/items/b.json", []byte("bad"), 0o644))
	store := datastore.NewFSStore(fs, "data")

	check := func(data []byte, field string) error {
		if string(data) != "ok" {
			return errors.New("broken " + field)
		}
		return nil
	}

	issues, err := CheckDataFiles(context.Background(), store, folders, check)
	require.NoError(t, err)
	assert.Equal(t, []FileIssue{{Path: "items/b.json", Error: "broken items"}}, issues)
}

type sampleModel struct {
	ID    int    `gorm:"primaryKey;column:id"`
	Name  string `gorm:"column:name;type:varchar(20)"`
	Extra string
}

func (sampleModel) TableName() string { return "samples" }

func TestModelColumns(t *testing.T) {
	assert.Equal(t, []string{"id", "name"}, ModelColumns(sampleModel{}))
	assert.Equal(t, []string{"id", "name"}, ModelColumns(&sampleModel{}))
}

func TestCheckSchema(t *testing.T) {
	_, err := CheckSchema(nil, sampleModel{})
	assert.Error(t, err)
}

package checkmgr_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmm-dev/s3check/pkg/checkmgr"
)

var recognizedKeys = []string{
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"AWS_REGION",
	"S3_BUCKET_NAME",
}

// withEnv runs fn with the recognized variables forced to exactly env
// (everything else unset), restoring the previous process environment
// afterwards.
func withEnv(t *testing.T, env map[string]string, fn func()) {
	saved := map[string]string{}
	for _, key := range recognizedKeys {
		if value, ok := os.LookupEnv(key); ok {
			saved[key] = value
		}
		os.Unsetenv(key)
	}
	defer func() {
		for _, key := range recognizedKeys {
			os.Unsetenv(key)
		}
		for key, value := range saved {
			os.Setenv(key, value)
		}
	}()

	for key, value := range env {
		os.Setenv(key, value)
	}
	fn()
}

// writeEnvFile drops contents into a fresh temp directory as ".env" and
// returns the file's path. Callers clean up with os.RemoveAll on the dir.
func writeEnvFile(t *testing.T, contents string) string {
	dir, err := ioutil.TempDir("", "s3check")
	require.Nil(t, err)

	path := filepath.Join(dir, ".env")
	require.Nil(t, ioutil.WriteFile(path, []byte(contents), 0644))
	return path
}

func newManager(envFile string, logger logrus.FieldLogger) (*checkmgr.CheckManager, error) {
	mgrArgs := map[string]interface{}{"env-file": envFile}
	if logger != nil {
		mgrArgs["logger"] = logger
	}
	return checkmgr.NewManager(mgrArgs)
}

func TestMissingAccessKeyHalts(t *testing.T) {
	path := writeEnvFile(t, "AWS_REGION=us-west-2\n")
	defer os.RemoveAll(filepath.Dir(path))

	withEnv(t, nil, func() {
		mgr, err := newManager(path, nil)
		assert.Nil(t, mgr)
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "AWS_ACCESS_KEY_ID")
	})
}

func TestMissingSecretKeyHalts(t *testing.T) {
	path := writeEnvFile(t, "AWS_ACCESS_KEY_ID=AKIAEXAMPLE\n")
	defer os.RemoveAll(filepath.Dir(path))

	withEnv(t, nil, func() {
		mgr, err := newManager(path, nil)
		assert.Nil(t, mgr)
		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "AWS_SECRET_ACCESS_KEY")
	})
}

func TestEnvFileWinsOverProcessEnv(t *testing.T) {
	path := writeEnvFile(t, "AWS_ACCESS_KEY_ID=file-key\nAWS_SECRET_ACCESS_KEY=file-secret\n")
	defer os.RemoveAll(filepath.Dir(path))

	withEnv(t, map[string]string{"AWS_ACCESS_KEY_ID": "env-key"}, func() {
		mgr, err := newManager(path, nil)
		require.Nil(t, err)
		defer mgr.Destroy()

		assert.Equal(t, "file-key", mgr.Creds.AccessKeyID)
	})
}

func TestProcessEnvFillsUnsetKeys(t *testing.T) {
	path := writeEnvFile(t, "AWS_ACCESS_KEY_ID=file-key\n")
	defer os.RemoveAll(filepath.Dir(path))

	env := map[string]string{
		"AWS_SECRET_ACCESS_KEY": "env-secret",
		"S3_BUCKET_NAME":        "env-bucket",
	}
	withEnv(t, env, func() {
		mgr, err := newManager(path, nil)
		require.Nil(t, err)
		defer mgr.Destroy()

		assert.Equal(t, "file-key", mgr.Creds.AccessKeyID)
		assert.Equal(t, "env-secret", mgr.Creds.SecretKey)
		assert.Equal(t, "env-bucket", mgr.Creds.BucketName)
	})
}

func TestInvalidRegionFallsBack(t *testing.T) {
	path := writeEnvFile(t,
		"AWS_ACCESS_KEY_ID=AKIAEXAMPLE\nAWS_SECRET_ACCESS_KEY=secret\nAWS_REGION=gondor-east-1\n")
	defer os.RemoveAll(filepath.Dir(path))

	withEnv(t, nil, func() {
		logger, hook := test.NewNullLogger()
		mgr, err := newManager(path, logger)
		require.Nil(t, err)
		defer mgr.Destroy()

		assert.Equal(t, checkmgr.DefaultRegion, mgr.Creds.Region)

		warned := false
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel {
				warned = true
				assert.Contains(t, entry.Message, "gondor-east-1")
				assert.Contains(t, entry.Message, checkmgr.DefaultRegion)
			}
		}
		assert.True(t, warned)
	})
}

func TestRegionIsLowercased(t *testing.T) {
	path := writeEnvFile(t,
		"AWS_ACCESS_KEY_ID=AKIAEXAMPLE\nAWS_SECRET_ACCESS_KEY=secret\nAWS_REGION=US-WEST-2\n")
	defer os.RemoveAll(filepath.Dir(path))

	withEnv(t, nil, func() {
		logger, hook := test.NewNullLogger()
		mgr, err := newManager(path, logger)
		require.Nil(t, err)
		defer mgr.Destroy()

		assert.Equal(t, "us-west-2", mgr.Creds.Region)
		for _, entry := range hook.AllEntries() {
			assert.NotEqual(t, logrus.WarnLevel, entry.Level)
		}
	})
}

func TestMissingRegionUsesDefault(t *testing.T) {
	path := writeEnvFile(t, "AWS_ACCESS_KEY_ID=AKIAEXAMPLE\nAWS_SECRET_ACCESS_KEY=secret\n")
	defer os.RemoveAll(filepath.Dir(path))

	withEnv(t, nil, func() {
		mgr, err := newManager(path, nil)
		require.Nil(t, err)
		defer mgr.Destroy()

		assert.Equal(t, checkmgr.DefaultRegion, mgr.Creds.Region)
		assert.Equal(t, "", mgr.Creds.BucketName)
		assert.NotNil(t, mgr.Store)
	})
}

func TestExplicitEnvFileMustExist(t *testing.T) {
	withEnv(t, nil, func() {
		mgr, err := newManager("/nonexistent/.env", nil)
		assert.Nil(t, mgr)
		assert.NotNil(t, err)
	})
}

package checkmgr

import (
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	awss3 "github.com/qmm-dev/s3check/pkg/aws-s3"
	"github.com/qmm-dev/s3check/pkg/s3check"
)

// DefaultRegion is applied when AWS_REGION is unset or not a region the SDK
// recognizes.
const DefaultRegion = "us-east-1"

// Keys recognized in the env file and the process environment.
const (
	keyAccessKey = "AWS_ACCESS_KEY_ID"
	keySecretKey = "AWS_SECRET_ACCESS_KEY"
	keyRegion    = "AWS_REGION"
	keyBucket    = "S3_BUCKET_NAME"
)

type CheckManager struct {
	Creds  *s3check.Credentials
	Store  s3check.ObjectStore
	Logger logrus.FieldLogger
	Cfg    *viper.Viper
}

// NewManager resolves credentials and builds the S3 store. Recognized
// userCfg options:
//   "env-file" : string, path to a dotenv-style overlay file
//   "logger" : logrus.FieldLogger, replaces the default logger
// Credential resolution failures (missing access key or secret key) abort
// before any store is constructed.
func NewManager(userCfg map[string]interface{}) (*CheckManager, error) {
	var err error
	mgr := &CheckManager{}

	if loggerRaw, ok := userCfg["logger"]; ok {
		if logger, ok := loggerRaw.(logrus.FieldLogger); ok {
			mgr.Logger = logger
		} else {
			return nil, errors.New("option 'logger' must satisfy logrus.FieldLogger")
		}
	} else {
		mgr.Logger = logrus.New()
	}

	if envFileRaw, ok := userCfg["env-file"]; ok {
		if envFile, ok := envFileRaw.(string); ok {
			err = mgr.initConfig(&envFile)
		} else {
			return nil, errors.New("option 'env-file' must be of type string")
		}
	} else {
		err = mgr.initConfig(nil)
	}
	if err != nil {
		return nil, err
	}

	if err = mgr.resolveCredentials(); err != nil {
		return nil, err
	}

	if err = mgr.initStore(); err != nil {
		return nil, err
	}

	return mgr, nil
}

func (self *CheckManager) Destroy() {
	if self.Store != nil {
		self.Store.Destroy()
	}
}

// NewRunner hands out a runner bound to the manager's store and logger.
func (self *CheckManager) NewRunner() *s3check.Runner {
	return s3check.NewRunner(self.Logger, self.Store)
}

func (self *CheckManager) initConfig(envFile *string) error {
	// This is a private viper context just for the env-file overlay (so as
	// not to conflict with the importer's usage).
	self.Cfg = viper.New()
	self.Cfg.SetConfigType("env")

	if envFile != nil {
		// An explicitly named file must exist.
		path, err := homedir.Expand(*envFile)
		if err != nil {
			return errors.Wrap(err, "Failed to expand env file path")
		}
		self.Cfg.SetConfigFile(path)
		if err := self.Cfg.ReadInConfig(); err != nil {
			return errors.Wrap(err, "Failed to load env file")
		}
		return nil
	}

	// Default search path is ./.env then ~/.env. Having no env file at all
	// is fine, the process environment may carry everything.
	candidates := []string{".env"}
	if home, err := homedir.Dir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		self.Cfg.SetConfigFile(path)
		if err := self.Cfg.ReadInConfig(); err != nil {
			return errors.Wrap(err, "Failed to load env file "+path)
		}
		break
	}
	return nil
}

// resolveCredentials gathers the four configuration values and validates
// them. The access key and secret key are mandatory; the region falls back
// to DefaultRegion; the bucket name may stay empty (it only gates the upload
// step).
func (self *CheckManager) resolveCredentials() error {
	creds := &s3check.Credentials{
		AccessKeyID: self.lookup(keyAccessKey),
		SecretKey:   self.lookup(keySecretKey),
		Region:      self.lookup(keyRegion),
		BucketName:  self.lookup(keyBucket),
	}

	if creds.AccessKeyID == "" {
		return errors.New(keyAccessKey + " not set in env file or environment")
	}
	if creds.SecretKey == "" {
		return errors.New(keySecretKey + " not set in env file or environment")
	}

	region := strings.ToLower(creds.Region)
	if region == "" {
		region = DefaultRegion
	} else if !awss3.ValidRegion(region) {
		// Not fatal. The substituted region is authoritative from here on.
		self.Logger.Warn("Invalid " + keyRegion + ": " + creds.Region + ". Using " + DefaultRegion)
		region = DefaultRegion
	}
	creds.Region = region

	self.Creds = creds
	return nil
}

// lookup queries the configured sources in order: env-file overlay first,
// then the process environment. First non-empty value wins.
func (self *CheckManager) lookup(key string) string {
	if value := self.Cfg.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}

func (self *CheckManager) initStore() error {
	store, err := awss3.NewStore(self.Logger.WithField("module", "store.awss3"), self.Creds)
	if err != nil {
		return errors.Wrap(err, "Failed to initialize S3 store")
	}
	self.Store = store
	return nil
}

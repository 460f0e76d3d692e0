package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `server:
  port: 8080
database:
  driver: mysql
  host: localhost
  port: 3306
  user: dealflow
  password: filepass
  name: dealflow
minio:
  endpoint: localhost:9000
  accessKey: minio
  secretKey: miniosecret
  bucketName: deals
  region: us-east-1
openai:
  apiKey: file-key
  model: gpt-4o
smtp:
  host: smtp.example.com
  port: 587
  username: mailer
  password: mailpass
  from: deals@example.com
company:
  name: Vantage Capital
  signatureName: Jordan Miles
  signatureTitle: Managing Director
  phoneNumber: "+1 555 0100"
  supportURL: https://vantage.example/contact
notify:
  internalRecipients:
    - team@vantage.example
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "deals", cfg.Minio.BucketName)
	assert.Equal(t, "file-key", cfg.OpenAI.APIKey)
	assert.Equal(t, []string{"team@vantage.example"}, cfg.Notify.InternalRecipients)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("SMTP_PASSWORD", "env-mailpass")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.OpenAI.APIKey)
	assert.Equal(t, "env-mailpass", cfg.SMTP.Password)
	assert.Equal(t, "filepass", cfg.Database.Password)
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai.apiKey")
	assert.Contains(t, err.Error(), "minio.endpoint")
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	var cfg Config
	cfg.OpenAI.APIKey = "k"
	cfg.Minio.Endpoint = "localhost:9000"
	cfg.Minio.BucketName = "deals"
	cfg.SMTP.From = "deals@example.com"
	cfg.Database.Driver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	assert.NoError(t, cfg.Validate())
}

func TestDSNs(t *testing.T) {
	t.Parallel()

	var cfg Config
	cfg.Database.Host = "db"
	cfg.Database.Port = 3306
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.Name = "dealflow"

	assert.Equal(t, "u:p@tcp(db:3306)/dealflow?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
	assert.Equal(t, "host=db port=3306 user=u password=p dbname=dealflow sslmode=disable", cfg.PostgresDSN())
}

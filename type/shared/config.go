package shared

import "time"

type Config struct {
	Environment       *bool          `yaml:"environment" envconfig:"ENVIRONMENT" validate:"required"`
	Port              *string        `yaml:"port" envconfig:"PORT" validate:"required"`
	BackendURL        *string        `yaml:"backend_url" envconfig:"BACKEND_URL" validate:"required"`
	Cors              []*string      `yaml:"cors" ignored:"true" validate:"required"`
	JWTSecret         *string        `yaml:"jwt_secret" envconfig:"JWT_SECRET" validate:"required"`
	Postgres          *string        `yaml:"postgres" envconfig:"POSTGRES" validate:"required"`
	PostgresReplicas  []string       `yaml:"postgres_replicas" envconfig:"POSTGRES_REPLICAS"`
	Mongo             *string        `yaml:"mongo" envconfig:"MONGO" validate:"required"`
	MongoDatabase     *string        `yaml:"mongo_database" envconfig:"MONGO_DATABASE" validate:"required"`
	MinIoEndpoint     *string        `yaml:"minio_endpoint" envconfig:"MINIO_ENDPOINT" validate:"required"`
	MinIoAccessKey    *string        `yaml:"minio_access_key" envconfig:"MINIO_ACCESS_KEY" validate:"required"`
	MinIoSecretKey    *string        `yaml:"minio_secret_key" envconfig:"MINIO_SECRET_KEY" validate:"required"`
	MinIoSecure       *bool          `yaml:"minio_secure" envconfig:"MINIO_SECURE"`
	BucketResource    *string        `yaml:"bucket_resource" envconfig:"BUCKET_RESOURCE" validate:"required"`
	BucketCertificate *string        `yaml:"bucket_certificate" envconfig:"BUCKET_CERTIFICATE" validate:"required"`
	MailHost          *string        `yaml:"mail_host" envconfig:"MAIL_HOST"`
	MailPort          *int           `yaml:"mail_port" envconfig:"MAIL_PORT"`
	MailUser          *string        `yaml:"mail_user" envconfig:"MAIL_USER"`
	MailPass          *string        `yaml:"mail_pass" envconfig:"MAIL_PASS"`
	MailFrom          *string        `yaml:"mail_from" envconfig:"MAIL_FROM"`
	SigningEnabled    *bool          `yaml:"signing_enabled" envconfig:"SIGNING_ENABLED"`
	SigningCertPath   *string        `yaml:"signing_cert_path" envconfig:"SIGNING_CERT_PATH"`
	SigningKeyPath    *string        `yaml:"signing_key_path" envconfig:"SIGNING_KEY_PATH"`
	IssueWorkers      *int           `yaml:"issue_workers" envconfig:"ISSUE_WORKERS" validate:"omitempty,min=1,max=64"`
	NotifyInterval    *time.Duration `yaml:"notify_interval" envconfig:"NOTIFY_INTERVAL"`
}

package config

type App struct {
	Port        string `envconfig:"APP_PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" default:"local_dev_secret"`
	UploadDir   string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	Env         string `envconfig:"APP_ENV" default:"dev"`
}

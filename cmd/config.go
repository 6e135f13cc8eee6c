package cmd

// Config carries everything the application needs from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL string

	RedisAddr            string
	RedisPositionChannel string

	RoutingBaseURL       string
	RouteToleranceMeters float64
}

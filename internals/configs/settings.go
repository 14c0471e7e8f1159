package configs

// Settings is the process-wide configuration, built once at startup and
// passed explicitly to the components that need it. Fields are never
// mutated after Load.
type Settings struct {
	AppName     string
	Environment string

	// Auth
	AccessTokenExpMinutes        int
	EmailVerifyTokenExpMinutes   int
	PasswordResetTokenExpMinutes int

	// Credential registry
	CredentialExpiryDays int

	// Face verification pipeline
	FaceModel             string  // descriptor family, informational
	EmbeddingDim          int     // float32 values per template
	VerificationThreshold float64 // cosine distance, match iff distance <= threshold
	QualityThreshold      float64 // composite quality score minimum
	MinSharpness          float64 // Laplacian variance minimum
	MinImageSize          int     // shortest side, pixels
	FaceCascadeFile       string  // pigo cascade; empty or missing file disables biometrics
}

func Load() *Settings {
	return &Settings{
		AppName:     GetEnv("APP_NAME", "tapwork"),
		Environment: GetEnv("APP_ENV", "development"),

		AccessTokenExpMinutes:        GetEnvInt("ACCESS_TOKEN_EXP_MINUTES", 60*24),
		EmailVerifyTokenExpMinutes:   GetEnvInt("EMAIL_VERIFY_TOKEN_EXP_MINUTES", 60*24),
		PasswordResetTokenExpMinutes: GetEnvInt("PASSWORD_RESET_TOKEN_EXP_MINUTES", 60),

		CredentialExpiryDays: GetEnvInt("CREDENTIAL_EXPIRY_DAYS", 365),

		FaceModel:             GetEnv("FACE_MODEL", "grid512"),
		EmbeddingDim:          GetEnvInt("FACE_EMBEDDING_DIM", 512),
		VerificationThreshold: GetEnvFloat("FACE_VERIFICATION_THRESHOLD", 0.40),
		QualityThreshold:      GetEnvFloat("FACE_QUALITY_THRESHOLD", 0.6),
		MinSharpness:          GetEnvFloat("FACE_MIN_SHARPNESS", 100),
		MinImageSize:          GetEnvInt("FACE_MIN_IMAGE_SIZE", 200),
		FaceCascadeFile:       GetEnv("FACE_CASCADE_FILE", "./cascade/facefinder"),
	}
}

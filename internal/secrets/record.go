package secrets

// Record is the fixed set of secret values the application needs. It is
// immutable after a successful load; callers receive it by reference and
// must not mutate it.
type Record struct {
	DatabaseURL string `json:"database_url"`
	APIKey      string `json:"api_key"`
	JWTSecret   string `json:"jwt_secret"`
	RedisURL    string `json:"redis_url"`
	StripeKey   string `json:"stripe_secret_key"`
}

// field binds a record field to its public name and environment variable.
type field struct {
	Name string
	Env  string
	Get  func(*Record) string
	Set  func(*Record, string)
}

var fields = []field{
	{"database_url", "DATABASE_URL",
		func(r *Record) string { return r.DatabaseURL },
		func(r *Record, v string) { r.DatabaseURL = v }},
	{"api_key", "API_KEY",
		func(r *Record) string { return r.APIKey },
		func(r *Record, v string) { r.APIKey = v }},
	{"jwt_secret", "JWT_SECRET",
		func(r *Record) string { return r.JWTSecret },
		func(r *Record, v string) { r.JWTSecret = v }},
	{"redis_url", "REDIS_URL",
		func(r *Record) string { return r.RedisURL },
		func(r *Record, v string) { r.RedisURL = v }},
	{"stripe_secret_key", "STRIPE_SECRET_KEY",
		func(r *Record) string { return r.StripeKey },
		func(r *Record, v string) { r.StripeKey = v }},
}

// FieldNames returns the public names of all record fields in declaration order.
func FieldNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the value of the named field and whether the name is known.
func (r *Record) Field(name string) (string, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Get(r), true
		}
	}
	return "", false
}

// Status reports each field as "configured" or "missing". Values never
// appear in the result.
func (r *Record) Status() map[string]string {
	status := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.Get(r) != "" {
			status[f.Name] = "configured"
		} else {
			status[f.Name] = "missing"
		}
	}
	return status
}

// missingEnv returns the environment variable names of all empty fields.
func (r *Record) missingEnv() []string {
	var missing []string
	for _, f := range fields {
		if f.Get(r) == "" {
			missing = append(missing, f.Env)
		}
	}
	return missing
}

// missingNames returns the public names of all empty fields.
func (r *Record) missingNames() []string {
	var missing []string
	for _, f := range fields {
		if f.Get(r) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDemoUsers(t *testing.T) {
	users := ParseDemoUsers("manager@demo.com:secret:Morgan Manager, marketing@demo.com:pw ,bad-entry,:nopass,")

	if assert.Len(t, users, 2) {
		assert.Equal(t, DemoUser{Email: "manager@demo.com", Password: "secret", Name: "Morgan Manager"}, users[0])
		assert.Equal(t, DemoUser{Email: "marketing@demo.com", Password: "pw", Name: "marketing@demo.com"}, users[1])
	}
}

func TestParseDemoUsers_Empty(t *testing.T) {
	assert.Empty(t, ParseDemoUsers(""))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5432", Name: "insights", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}

	assert.Equal(t, "host=db user=u password=p dbname=insights port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}

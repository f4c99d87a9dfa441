// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package dbopen locates Postgres from PREFIX_* environment variables.
package dbopen

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

var ErrDatabaseNotConfigured = errors.New("database connection configuration is unavailable")

// Location is a Postgres endpoint assembled from environment variables.
type Location struct {
	URL      string // PREFIX_URL, used verbatim when set
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LocationFromEnv reads PREFIX_URL, or PREFIX_HOST, PREFIX_PORT, PREFIX_USER,
// PREFIX_PASSWORD, PREFIX_DBNAME and PREFIX_SSLMODE. A trailing "_" is
// added to prefix when missing. HOST and DBNAME are required unless URL is
// set; PORT defaults to 5432.
func LocationFromEnv(prefix string) (Location, error) {
	if !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}

	if urlStr := os.Getenv(prefix + "URL"); urlStr != "" {
		return Location{URL: urlStr}, nil
	}

	loc := Location{
		Host:     os.Getenv(prefix + "HOST"),
		Port:     os.Getenv(prefix + "PORT"),
		User:     os.Getenv(prefix + "USER"),
		Password: os.Getenv(prefix + "PASSWORD"),
		DBName:   os.Getenv(prefix + "DBNAME"),
		SSLMode:  os.Getenv(prefix + "SSLMODE"),
	}

	var missing []string
	if loc.Host == "" {
		missing = append(missing, prefix+"HOST")
	}
	if loc.DBName == "" {
		missing = append(missing, prefix+"DBNAME")
	}
	if len(missing) > 0 {
		return Location{}, fmt.Errorf("missing required environment variable(s): %s", strings.Join(missing, ", "))
	}
	if loc.Port == "" {
		loc.Port = "5432"
	}
	return loc, nil
}

// String renders the connection URL. OTEL_SERVICE_NAME, when set, becomes
// the application_name so sessions are attributable in pg_stat_activity.
func (l Location) String() string {
	if l.URL != "" {
		return l.URL
	}

	u := &url.URL{
		Scheme: "postgresql",
		Host:   l.Host + ":" + l.Port,
		Path:   l.DBName,
	}
	switch {
	case l.User != "" && l.Password != "":
		u.User = url.UserPassword(l.User, l.Password)
	case l.User != "":
		u.User = url.User(l.User)
	}

	q := u.Query()
	if l.SSLMode != "" {
		q.Set("sslmode", l.SSLMode)
	}
	if appName := applicationName(os.Getenv("OTEL_SERVICE_NAME")); appName != "" {
		q.Set("application_name", appName)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// GetDatabaseURLFromEnv is LocationFromEnv(prefix).String().
func GetDatabaseURLFromEnv(prefix string) (string, error) {
	loc, err := LocationFromEnv(prefix)
	if err != nil {
		return "", err
	}
	return loc.String(), nil
}

// applicationName keeps alphanumerics, '-' and '_' and caps the result at
// Postgres' 63 byte identifier limit.
func applicationName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if len(name) > 63 {
		name = name[:63]
	}
	return name
}

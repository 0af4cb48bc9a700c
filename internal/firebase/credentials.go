// Package firebase is the production store driver: Firestore for documents
// and the Realtime Database for live flight nodes.
package firebase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	credentialType = "service_account"
	googleTokenURI = "https://oauth2.googleapis.com/token"
)

// Settings identifies the project and service account.
type Settings struct {
	ProjectID   string
	ClientEmail string
	// PrivateKey is a normalized PEM block.
	PrivateKey  string
	DatabaseURL string
}

type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
	TokenURI    string `json:"token_uri"`
}

// CredentialsJSON renders s as a service-account key file.
func CredentialsJSON(s Settings) ([]byte, error) {
	var missing []string
	if strings.TrimSpace(s.ProjectID) == "" {
		missing = append(missing, "project id")
	}
	if strings.TrimSpace(s.ClientEmail) == "" {
		missing = append(missing, "client email")
	}
	if strings.TrimSpace(s.PrivateKey) == "" {
		missing = append(missing, "private key")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("service account incomplete: missing %s", strings.Join(missing, ", "))
	}
	if !strings.Contains(s.ClientEmail, "@") {
		return nil, errors.New("service account client email is not an address")
	}

	return json.Marshal(serviceAccount{
		Type:        credentialType,
		ProjectID:   s.ProjectID,
		PrivateKey:  s.PrivateKey,
		ClientEmail: s.ClientEmail,
		TokenURI:    googleTokenURI,
	})
}

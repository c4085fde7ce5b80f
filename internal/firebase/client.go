package firebase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	jsoniter "github.com/json-iterator/go"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"local-library/internal/auth"
	"local-library/internal/catalog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config to ustawienia połączenia z Firebase
type Config struct {
	CredentialsPath string // ścieżka do pliku service account (rozwój lokalny)
	CredentialsJSON string // JSON service account (produkcja)
	WebAPIKey       string // klucz Web API do weryfikacji haseł
}

// Client zawiera klientów Firebase i implementuje magazyn katalogu na Firestore
type Client struct {
	App       *firebase.App
	Auth      *fbauth.Client
	Firestore *firestore.Client

	webAPIKey  string
	signInURL  string
	httpClient *http.Client
}

const signInWithPasswordURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

var (
	_ catalog.Store     = (*Client)(nil)
	_ catalog.UserStore = (*Client)(nil)
)

// InitFirebase inicjalizuje klienta Firebase
func InitFirebase(ctx context.Context, cfg Config) (*Client, error) {
	var opt option.ClientOption

	// Sprawdź czy jest plik credentials (rozwój lokalny)
	if cfg.CredentialsPath != "" {
		if _, err := os.Stat(cfg.CredentialsPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("plik credentials nie istnieje: %s", cfg.CredentialsPath)
		}
		opt = option.WithCredentialsFile(cfg.CredentialsPath)
	} else {
		// Tryb produkcyjny - użyj JSON z konfiguracji
		if cfg.CredentialsJSON == "" {
			return nil, fmt.Errorf("brak FIREBASE_CREDENTIALS_PATH lub FIREBASE_CREDENTIALS_JSON")
		}
		opt = option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("błąd inicjalizacji Firebase App: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("błąd inicjalizacji Firebase Auth: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("błąd inicjalizacji Firestore: %w", err)
	}

	log.Println("Firebase zainicjalizowany pomyślnie")
	return &Client{
		App:        app,
		Auth:       authClient,
		Firestore:  firestoreClient,
		webAPIKey:  cfg.WebAPIKey,
		signInURL:  signInWithPasswordURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Close zamyka połączenia z Firebase
func (c *Client) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}

// VerifyPassword weryfikuje email i hasło przez Firebase Authentication REST API i zwraca UID
func (c *Client) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	if c.webAPIKey == "" {
		return "", fmt.Errorf("brak FIREBASE_WEB_API_KEY w konfiguracji")
	}

	url := c.signInURL + "?key=" + c.webAPIKey

	jsonData, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", fmt.Errorf("błąd tworzenia żądania: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("błąd tworzenia żądania: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("błąd połączenia z Firebase Auth: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("błąd odczytu odpowiedzi: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &errorResp); err == nil {
			switch errorResp.Error.Message {
			case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
				return "", auth.ErrInvalidCredentials
			case "USER_DISABLED":
				return "", auth.ErrInactive
			default:
				return "", fmt.Errorf("błąd autoryzacji: %s", errorResp.Error.Message)
			}
		}
		return "", fmt.Errorf("błąd weryfikacji hasła (status: %d)", resp.StatusCode)
	}

	var authResp struct {
		LocalID string `json:"localId"` // Firebase UID
	}
	if err := json.Unmarshal(body, &authResp); err != nil {
		return "", fmt.Errorf("błąd parsowania odpowiedzi: %w", err)
	}

	return authResp.LocalID, nil
}

// notFound tłumaczy błąd NotFound z Firestore na catalog.ErrNotFound
func notFound(err error) error {
	if status.Code(err) == codes.NotFound {
		return catalog.ErrNotFound
	}
	return err
}

func dateToTime(d *civil.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.In(time.UTC)
	return &t
}

func timeToDate(t *time.Time) *civil.Date {
	if t == nil {
		return nil
	}
	d := civil.DateOf(t.UTC())
	return &d
}

// Package cloudinary firma peticiones de subida directa desde el navegador.
// El cliente sube la imagen a Cloudinary con la firma; el API nunca toca los
// bytes de la foto.
package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Signer calcula la firma de subida con el API secret de la cuenta.
type Signer struct {
	cloudName string
	apiKey    string
	apiSecret string
}

// NewSigner construye el firmador.
func NewSigner(cloudName, apiKey, apiSecret string) *Signer {
	return &Signer{cloudName: cloudName, apiKey: apiKey, apiSecret: apiSecret}
}

// Enabled indica si la cuenta está configurada.
func (s *Signer) Enabled() bool {
	return s.cloudName != "" && s.apiKey != "" && s.apiSecret != ""
}

// Signature datos que el cliente necesita para la subida directa.
type Signature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
	Folder    string `json:"folder,omitempty"`
}

// SignAt firma los parámetros de subida que el cliente proporcionó. El
// timestamp lo fija el cliente porque Cloudinary valida la firma contra el
// mismo valor que recibe en la subida.
func (s *Signer) SignAt(folder string, ts int64) Signature {
	return Signature{
		Signature: s.sign(folder, ts),
		Timestamp: ts,
		APIKey:    s.apiKey,
		CloudName: s.cloudName,
		Folder:    folder,
	}
}

// sign concatena los parámetros ordenados alfabéticamente como
// clave=valor unidos por '&', les añade el secret y devuelve el SHA-1 en hex.
func (s *Signer) sign(folder string, ts int64) string {
	params := map[string]string{
		"timestamp": fmt.Sprintf("%d", ts),
	}
	if folder != "" {
		params["folder"] = folder
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))
	return hex.EncodeToString(sum[:])
}

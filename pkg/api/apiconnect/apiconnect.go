// Package apiconnect wires the api messages to Connect handlers and clients.
// Every service mounts under /pokerledger.v1.<Service>/ and speaks the api.Codec
// JSON encoding; the codec is installed ahead of caller-supplied options.
// The messages are plain structs, so binary protobuf is not served: requests
// with a non-JSON content type are refused with 415 before reaching Connect.
package apiconnect

import (
	"mime"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	api "github.com/mmynk/pokerledger/pkg/api"
)

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func withClientCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

// acceptPost lists the content types the handlers decode.
const acceptPost = "application/json, application/grpc+json, application/grpc-web+json"

// isJSON reports whether contentType is application/json or a +json variant
// such as application/grpc+json.
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// route dispatches on the exact procedure path.
func route(prefix string, procedures map[string]http.Handler) (string, http.Handler) {
	return prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := procedures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodPost && !isJSON(r.Header.Get("Content-Type")) {
			w.Header().Set("Accept-Post", acceptPost)
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		h.ServeHTTP(w, r)
	})
}

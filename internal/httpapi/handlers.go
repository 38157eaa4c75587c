package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront-app/internal/audit"
	"storefront-app/internal/auth"
	"storefront-app/internal/bigcommerce"
	"storefront-app/internal/metrics"
	"storefront-app/internal/store"
	"storefront-app/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Platform is the subset of the platform client the handlers need.
type Platform interface {
	ExchangeCode(ctx context.Context, callbackBaseURL, code, scope, storeContext string) (bigcommerce.OAuthResponse, error)
	DecodeLoadToken(token string, now time.Time) (bigcommerce.Claims, error)
	StoreInformation(ctx context.Context, s bigcommerce.Store) (bigcommerce.StoreInformation, error)
	UpsertScript(ctx context.Context, s bigcommerce.Store, name, html string) error
	RemoveAllScripts(ctx context.Context, s bigcommerce.Store) error
}

// Handlers groups HTTP handlers for dependency injection.
// This is the only layer that turns auth, platform and store errors into
// HTTP statuses.
type Handlers struct {
	// BaseURL is this app's public URL; it prefixes the OAuth redirect_uri.
	BaseURL string

	Auth     *auth.Manager
	Platform Platform
	Stores   store.Repository
	Audit    *audit.Service

	Now func() time.Time
}

func (h Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

type sessionResponse struct {
	Token     string `json:"token"`
	StoreHash string `json:"store_hash"`
}

// --- Platform callbacks ---

// Install completes the OAuth install: exchange the code, persist the store,
// and hand the embedded frontend a session token.
func (h Handlers) Install(c *gin.Context) {
	log := logger.FromGin(c)

	if h.Platform == nil || h.Stores == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "install not configured"})
		return
	}

	code := c.Query("code")
	scope := c.Query("scope")
	storeContext := c.Query("context")
	if code == "" || scope == "" || storeContext == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "code, scope, context required"})
		return
	}

	resp, err := h.Platform.ExchangeCode(c.Request.Context(), h.BaseURL, code, scope, storeContext)
	if err != nil {
		metrics.ObserveOAuthExchange(metrics.ResultTransport)
		log.Warn("oauth exchange failed", "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "oauth exchange failed"})
		return
	}

	st, err := resp.StoreIdentity()
	if err != nil {
		metrics.ObserveOAuthExchange(metrics.ResultFormat)
		log.Error("platform returned malformed context", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	metrics.ObserveOAuthExchange(metrics.ResultOK)

	if err := h.Stores.Save(c.Request.Context(), st); err != nil {
		log.Error("store save failed", "store_hash", st.Hash, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	actor := audit.Actor{ID: resp.User.ID, Email: resp.User.Email, IP: c.ClientIP()}
	if err := h.Audit.LogInstalled(c.Request.Context(), st.Hash, resp.Scope, actor); err != nil {
		log.Warn("audit append failed", "store_hash", st.Hash, "err", err)
	}

	h.respondWithSession(c, st.Hash)
}

// Load handles the platform's signed page load of the embedded app.
func (h Handlers) Load(c *gin.Context) {
	log := logger.FromGin(c)

	claims, hash, ok := h.verifyPlatformPayload(c)
	if !ok {
		return
	}

	if _, err := h.Stores.Get(c.Request.Context(), hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "store not installed"})
			return
		}
		log.Error("store lookup failed", "store_hash", hash, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if err := h.Audit.LogLoaded(c.Request.Context(), hash, actorFrom(c, claims)); err != nil {
		log.Warn("audit append failed", "store_hash", hash, "err", err)
	}

	h.respondWithSession(c, hash)
}

// Uninstall forgets the store. Unknown stores are not an error; the platform
// may repeat the callback.
func (h Handlers) Uninstall(c *gin.Context) {
	log := logger.FromGin(c)

	claims, hash, ok := h.verifyPlatformPayload(c)
	if !ok {
		return
	}

	if err := h.Stores.Delete(c.Request.Context(), hash); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("store delete failed", "store_hash", hash, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if err := h.Audit.LogUninstalled(c.Request.Context(), hash, actorFrom(c, claims)); err != nil {
		log.Warn("audit append failed", "store_hash", hash, "err", err)
	}
	c.Status(http.StatusNoContent)
}

// verifyPlatformPayload decodes signed_payload_jwt and derives the store hash.
// On failure it has already written the response.
func (h Handlers) verifyPlatformPayload(c *gin.Context) (bigcommerce.Claims, string, bool) {
	log := logger.FromGin(c)

	if h.Platform == nil || h.Stores == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "platform not configured"})
		return bigcommerce.Claims{}, "", false
	}

	payload := c.Query("signed_payload_jwt")
	if payload == "" {
		metrics.ObservePlatformToken(metrics.ResultInvalidToken)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return bigcommerce.Claims{}, "", false
	}

	claims, err := h.Platform.DecodeLoadToken(payload, h.now())
	if err != nil {
		if errors.Is(err, bigcommerce.ErrInvalidToken) {
			metrics.ObservePlatformToken(metrics.ResultInvalidToken)
			log.Debug("platform payload rejected", "reason", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return bigcommerce.Claims{}, "", false
		}
		metrics.ObservePlatformToken(metrics.ResultUnexpected)
		log.Error("platform payload check failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return bigcommerce.Claims{}, "", false
	}

	hash, err := claims.StoreHash()
	if err != nil {
		metrics.ObservePlatformToken(metrics.ResultFormat)
		log.Error("platform payload has malformed subject", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return bigcommerce.Claims{}, "", false
	}
	metrics.ObservePlatformToken(metrics.ResultOK)
	return claims, hash, true
}

func (h Handlers) respondWithSession(c *gin.Context, storeHash string) {
	tok, err := h.Auth.Issue(h.now(), storeHash)
	if err != nil {
		logger.FromGin(c).Error("session issue failed", "store_hash", storeHash, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Token: tok, StoreHash: storeHash})
}

func actorFrom(c *gin.Context, claims bigcommerce.Claims) audit.Actor {
	return audit.Actor{ID: claims.User.ID, Email: claims.User.Email, IP: c.ClientIP()}
}

// --- Authenticated API ---

// Me returns the authenticated principal.
func (h Handlers) Me(c *gin.Context) {
	claims, err := auth.ClaimsFromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"store_hash": claims.Subject,
		"role":       claims.Role,
		"expires_at": claims.Expiry().Unix(),
	})
}

// Session answers 204 when the gate let the request through.
func (h Handlers) Session(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (h Handlers) StoreInformation(c *gin.Context) {
	st, ok := h.currentStore(c)
	if !ok {
		return
	}
	info, err := h.Platform.StoreInformation(c.Request.Context(), st)
	if err != nil {
		logger.FromGin(c).Warn("store information failed", "store_hash", st.Hash, "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "platform request failed"})
		return
	}
	c.JSON(http.StatusOK, info)
}

type widgetRequest struct {
	Name string `json:"name" binding:"required"`
	HTML string `json:"html" binding:"required"`
}

// PutWidget creates or updates the storefront script with the given name.
func (h Handlers) PutWidget(c *gin.Context) {
	var req widgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name and html required"})
		return
	}
	st, ok := h.currentStore(c)
	if !ok {
		return
	}
	if err := h.Platform.UpsertScript(c.Request.Context(), st, req.Name, req.HTML); err != nil {
		logger.FromGin(c).Warn("script upsert failed", "store_hash", st.Hash, "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "platform request failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteWidget removes every script the app installed on the storefront.
func (h Handlers) DeleteWidget(c *gin.Context) {
	st, ok := h.currentStore(c)
	if !ok {
		return
	}
	if err := h.Platform.RemoveAllScripts(c.Request.Context(), st); err != nil {
		logger.FromGin(c).Warn("script removal failed", "store_hash", st.Hash, "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "platform request failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// currentStore loads the Store for the session's subject.
func (h Handlers) currentStore(c *gin.Context) (bigcommerce.Store, bool) {
	if h.Platform == nil || h.Stores == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "platform not configured"})
		return bigcommerce.Store{}, false
	}
	hash, err := auth.StoreHash(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return bigcommerce.Store{}, false
	}
	st, err := h.Stores.Get(c.Request.Context(), hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "store not installed"})
			return bigcommerce.Store{}, false
		}
		logger.FromGin(c).Error("store lookup failed", "store_hash", hash, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return bigcommerce.Store{}, false
	}
	return st, true
}

package basic

import (
	"fmt"
	"strings"

	"github.com/Sokol111/ecommerce-sales/pkg/core/logger"
	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	missingCredentialsMessage = "Full authentication is required to access this resource"
	badCredentialsMessage     = "Bad credentials"
	accessDeniedMessage       = "Access Denied"
)

// Authenticator is the HTTP Basic gin middleware.
type Authenticator struct {
	store       CredentialStore
	realm       string
	publicPaths []string
	rules       []RuleConfig
}

func NewAuthenticator(conf Config, store CredentialStore) *Authenticator {
	return &Authenticator{
		store:       store,
		realm:       conf.Realm,
		publicPaths: conf.PublicPaths,
		rules:       conf.Rules,
	}
}

// Handle authenticates every non-public request, checks the first matching
// rule and stores the Principal in the request context.
func (a *Authenticator) Handle(c *gin.Context) {
	path := c.Request.URL.Path
	if a.isPublic(path) {
		c.Next()
		return
	}

	username, password, ok := c.Request.BasicAuth()
	if !ok {
		a.challenge(c, missingCredentialsMessage)
		return
	}

	principal, err := a.store.Authenticate(username, password)
	if err != nil {
		logger.Get(c).Debug("basic authentication failed", zap.String("username", username), zap.Error(err))
		a.challenge(c, badCredentialsMessage)
		return
	}

	if rule, found := a.rule(path); found && !hasAnyRole(principal, rule.Roles) {
		logger.Get(c).Debug("access denied",
			zap.String("username", principal.Username),
			zap.Strings("required_roles", rule.Roles),
		)
		problems.Abort(c, problems.AccessDenied{Message: accessDeniedMessage})
		return
	}

	ctx := ContextWithPrincipal(c.Request.Context(), principal)
	ctx = logger.WithFields(ctx, zap.String("username", principal.Username))
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func (a *Authenticator) challenge(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", a.realm))
	problems.Abort(c, problems.AuthenticationRequired{Message: message})
}

func (a *Authenticator) isPublic(path string) bool {
	return lo.SomeBy(a.publicPaths, func(prefix string) bool { return matchesPrefix(path, prefix) })
}

func (a *Authenticator) rule(path string) (RuleConfig, bool) {
	return lo.Find(a.rules, func(r RuleConfig) bool { return matchesPrefix(path, r.Path) })
}

func hasAnyRole(p Principal, roles []string) bool {
	return len(lo.Intersect(p.Roles, roles)) > 0
}

// matchesPrefix matches prefix itself, anything below it, and file-like
// siblings such as /v3/api-docs.yaml.
func matchesPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/' || rest[0] == '.'
}

package problems

import (
	"github.com/gin-gonic/gin"
)

// TypeContextKey holds the type of the document rendered for the current request.
const TypeContextKey = "problems.type"

// Render writes doc as application/problem+json and aborts the handler chain.
func Render(c *gin.Context, doc *Document) {
	c.Set(TypeContextKey, doc.Type)
	c.Header("Content-Type", ContentType)
	c.AbortWithStatusJSON(doc.Status, doc)
}

// Abort records f on the context for the problem middleware and stops the chain.
func Abort(c *gin.Context, f Failure) {
	_ = c.Error(f)
	c.Abort()
}

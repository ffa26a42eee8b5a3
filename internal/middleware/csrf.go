package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	csrfField    = "csrf_token"
	csrfNonceKey = "csrf_nonce"
	csrfSubject  = "csrf"
	csrfTTL      = time.Hour
)

var (
	errCSRFSubject = errors.New("csrf token subject mismatch")
	errCSRFSession = errors.New("csrf token does not belong to this session")
)

// CSRF 表单防跨站请求伪造，依赖 sessions 中间件
// token 的 jti 绑定到 Session 中的随机 nonce；POST 请求必须携带属于当前 Session 的有效 token，否则交给 onFail 处理
func CSRF(secret string, onFail gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		nonce, _ := session.Get(csrfNonceKey).(string)

		if c.Request.Method == http.MethodPost {
			if err := ValidateCSRFToken(c.PostForm(csrfField), secret, nonce); err != nil {
				c.Set("csrf_error", err)
				onFail(c)
				c.Abort()
				return
			}
		}

		// 首次访问时生成 nonce 并写入 Session
		if nonce == "" {
			nonce = uuid.NewString()
			session.Set(csrfNonceKey, nonce)
			if err := session.Save(); err != nil {
				c.Error(err)
			}
		}

		if token, err := GenerateCSRFToken(secret, nonce, csrfTTL); err == nil {
			c.Set(csrfField, token)
		}
		c.Next()
	}
}

// GetCSRFToken 从上下文获取当前请求的 CSRF token
func GetCSRFToken(c *gin.Context) string {
	return c.GetString(csrfField)
}

// GenerateCSRFToken 生成绑定 nonce、带过期时间的 CSRF token
func GenerateCSRFToken(secret, nonce string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        nonce,
		Subject:   csrfSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateCSRFToken 校验 CSRF token，nonce 为当前 Session 中保存的值
func ValidateCSRFToken(tokenString, secret, nonce string) error {
	if tokenString == "" {
		return jwt.ErrTokenMalformed
	}
	if nonce == "" {
		return errCSRFSession
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenInvalidClaims
	}
	if claims.Subject != csrfSubject {
		return errCSRFSubject
	}
	if subtle.ConstantTimeCompare([]byte(claims.ID), []byte(nonce)) != 1 {
		return errCSRFSession
	}
	return nil
}

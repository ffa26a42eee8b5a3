package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/user/topmovies/internal/config"
	"github.com/user/topmovies/internal/middleware"
	"github.com/user/topmovies/internal/repository"
	"github.com/user/topmovies/internal/service"
)

const flashKey = "flash"

// Handler HTTP 处理器
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	Catalog *service.CatalogService
	Log     *logrus.Logger
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config, log *logrus.Logger) *Handler {
	// 创建 TMDB 服务
	tmdb := service.NewTMDBService(cfg)

	// 创建电影清单服务
	catalog := service.NewCatalogService(repos.Movie, tmdb, log)

	return &Handler{
		Repos:   repos,
		Config:  cfg,
		Catalog: catalog,
		Log:     log,
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName":  h.Config.SiteName,
		"Path":      c.Request.URL.Path,
		"CSRFToken": middleware.GetCSRFToken(c),
	}

	// 一次性提示消息，读取后即删除
	session := sessions.Default(c)
	if msg, ok := session.Get(flashKey).(string); ok && msg != "" {
		res["Flash"] = msg
		session.Delete(flashKey)
		if err := session.Save(); err != nil {
			h.Log.WithError(err).Warn("保存 Session 失败")
		}
	}

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// flash 写入一次性提示消息，在下一次页面渲染时展示
func (h *Handler) flash(c *gin.Context, msg string) {
	session := sessions.Default(c)
	session.Set(flashKey, msg)
	if err := session.Save(); err != nil {
		h.Log.WithError(err).Warn("保存 Session 失败")
	}
}

func (h *Handler) title(page string) string {
	if page == "" {
		return h.Config.SiteName
	}
	return page + " - " + h.Config.SiteName
}

// ==================== 错误页面 ====================

// NotFound 404 页面
func (h *Handler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": h.title("Not Found"),
	}))
}

// CSRFFailed 表单 token 缺失或过期
func (h *Handler) CSRFFailed(c *gin.Context) {
	h.renderError(c, http.StatusBadRequest, "The form has expired. Please go back and try again.")
}

// Recovery panic 兜底
func (h *Handler) Recovery(c *gin.Context, recovered any) {
	h.Log.WithFields(logrus.Fields{
		"panic":      recovered,
		"path":       c.Request.URL.Path,
		"request_id": middleware.GetRequestID(c),
	}).Error("请求处理发生恐慌")
	h.renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// handleError 根据错误类型返回对应页面
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.NotFound(c)
	case errors.Is(err, service.ErrProvider):
		c.Error(err)
		h.renderError(c, http.StatusBadGateway, "The movie database could not be reached. Please try again later.")
	default:
		c.Error(err)
		h.renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	h.renderError(c, http.StatusBadRequest, message)
}

func (h *Handler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", h.RenderData(c, gin.H{
		"Title":   h.title(fmt.Sprintf("Error %d", status)),
		"Status":  status,
		"Message": message,
	}))
}

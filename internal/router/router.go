package router

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/user/topmovies/internal/handler"
	"github.com/user/topmovies/internal/metrics"
	"github.com/user/topmovies/internal/middleware"
	"github.com/user/topmovies/web"
)

const sessionName = "topmovies_session"

// Setup 组装 Gin 引擎：中间件、模板、静态文件与路由
func Setup(h *handler.Handler) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(h.Log))
	r.Use(gin.CustomRecovery(h.Recovery))
	r.Use(middleware.Metrics())

	// 启用 gzip，默认压缩级别（指标接口除外）
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 设置 Session 中间件
	store := cookie.NewStore([]byte(h.Config.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   h.Config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// 加载模板（使用 multitemplate 解决继承问题）
	templates, err := fs.Sub(web.FS, "templates")
	if err != nil {
		panic(err)
	}
	r.HTMLRender = LoadTemplates(templates)

	// 需在注册静态文件和路由之前，路由注册时才会带上
	r.Use(middleware.Security())

	// 静态文件
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))

	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ==================== 页面 ====================
	pages := r.Group("/")
	pages.Use(middleware.CSRF(h.Config.AppSecret, h.CSRFFailed))
	{
		pages.GET("", h.Home)
		pages.GET("/add", h.AddPage)
		pages.POST("/add", h.Add)
		pages.GET("/selected", h.Selected)
		pages.GET("/edit", h.EditPage)
		pages.POST("/edit", h.Edit)
		pages.GET("/delete", h.Delete)
	}

	r.NoRoute(h.NotFound)
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(fsys fs.FS) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	// 获取布局和局部模板
	layouts, err := fs.Glob(fsys, "layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(partials)+1)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 模板函数
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
	}

	// 注册所有页面模板
	pages := []string{"home", "add", "select", "edit", "error", "404"}

	for _, page := range pages {
		name := page + ".html"
		tmpl := template.Must(template.New(name).Funcs(funcMap).ParseFS(fsys, assemble("pages/"+name)...))
		r.Add(name, tmpl)
	}

	return r
}

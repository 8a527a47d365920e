package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopscope/internal/config"
	"shopscope/internal/server/handlers"
	"shopscope/internal/service/store"
)

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	handlers *handlers.Handlers
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	files := store.NewMemoryStore()
	h := handlers.NewHandlers(files, cfg.Analysis.MaxRows, cfg.Analysis.GrowthThreshold)

	s := &Server{
		router:   gin.Default(),
		handlers: h,
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}

	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		// 无前端构建产物时提供一个最小上传页
		s.router.GET("/", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
		})
		s.router.NoRoute(func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

const indexHTML = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>店铺业绩分析</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 40px auto; padding: 0 16px; }
pre { background: #f5f5f5; padding: 12px; overflow: auto; }
</style>
</head>
<body>
<h1>店铺业绩分析</h1>
<p>上传订单 Excel 文件（.xlsx / .xls，最大 10MB），自动识别列并分析业绩。</p>
<form id="f">
<input type="file" name="file" accept=".xlsx,.xls" required>
<button type="submit">上传并分析</button>
</form>
<pre id="out"></pre>
<script>
document.getElementById('f').addEventListener('submit', async function (e) {
  e.preventDefault();
  var out = document.getElementById('out');
  var fd = new FormData(e.target);
  var up = await fetch('/api/upload', { method: 'POST', body: fd }).then(r => r.json());
  if (up.code !== 0) { out.textContent = up.message; return; }
  var res = await fetch('/api/files/' + up.data.fileId + '/analyze', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: '{}'
  }).then(r => r.json());
  out.textContent = JSON.stringify(res, null, 2);
});
</script>
</body>
</html>
`

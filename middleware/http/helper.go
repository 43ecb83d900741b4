package middleware

import (
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// PathMatcher 路径匹配器, 用于各中间件的 SkipPaths
type PathMatcher struct {
	exact    map[string]struct{} // "/healthz"
	prefixes []string            // "/swagger/**" 记为 "/swagger"
	patterns []string            // "/v1/*/verify"
}

// NewPathMatcher 创建路径匹配器
//
// 支持三种写法：
//   - 精确匹配："/healthz" 只匹配 "/healthz"
//   - 前缀匹配："/swagger/**" 匹配 "/swagger" 及其所有子路径
//   - Glob 模式："/v1/*/verify" 使用 path.Match 匹配
func NewPathMatcher(paths []string) *PathMatcher {
	pm := &PathMatcher{exact: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		switch prefix, ok := strings.CutSuffix(p, "/**"); {
		case ok:
			pm.prefixes = append(pm.prefixes, prefix)
		case strings.ContainsAny(p, "*?["):
			pm.patterns = append(pm.patterns, p)
		default:
			pm.exact[p] = struct{}{}
		}
	}
	return pm
}

// Match 检查路径是否匹配
func (pm *PathMatcher) Match(urlPath string) bool {
	if pm == nil {
		return false
	}

	if _, ok := pm.exact[urlPath]; ok {
		return true
	}

	for _, prefix := range pm.prefixes {
		rest, ok := strings.CutPrefix(urlPath, prefix)
		if ok && (rest == "" || rest[0] == '/') {
			return true
		}
	}

	for _, pattern := range pm.patterns {
		if matched, _ := path.Match(pattern, urlPath); matched {
			return true
		}
	}
	return false
}

// shouldSkip 检查请求是否应跳过处理
func shouldSkip(c *gin.Context, matcher *PathMatcher, skipFunc func(*gin.Context) bool) bool {
	if skipFunc != nil && skipFunc(c) {
		return true
	}
	return matcher.Match(c.Request.URL.Path)
}

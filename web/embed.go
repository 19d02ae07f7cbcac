// Package web 提供嵌入的页面模板和静态资源
package web

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Templates 解析全部嵌入模板
func Templates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("解析模板失败: %w", err)
	}
	return tmpl, nil
}

// MustTemplates 解析全部嵌入模板，失败时 panic（仅启动阶段调用）
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Static 读取单个嵌入静态文件
func Static(name string) ([]byte, error) {
	return staticFS.ReadFile("static/" + name)
}

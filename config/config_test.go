package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir 切换工作目录，测试结束后恢复
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("获取工作目录失败: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("切换工作目录失败: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("恢复工作目录失败: %v", err)
		}
	})
}

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("缺失配置文件时应回落默认值: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("期望默认端口 8080，实际=%d", cfg.Server.Port)
	}
	if cfg.Plan.Semesters != 8 {
		t.Errorf("期望默认 8 个学期，实际=%d", cfg.Plan.Semesters)
	}
}

func TestLoad_MalformedConfigFileFails(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(bad, []byte("server:\n  port: [未闭合"), 0o644); err != nil {
		t.Fatalf("写入测试配置失败: %v", err)
	}
	chdir(t, dir)

	// 文件存在但解析失败，不能静默回落默认值启动
	if _, err := Load(""); err == nil {
		t.Fatal("损坏的 config.yaml 应使加载失败")
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("显式指定损坏配置文件应使加载失败")
	}
}

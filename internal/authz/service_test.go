package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("editors", "/admin/categories/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.SetAdminRoles(1, []string{"editors"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/categories/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/categories/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("editors", "/admin/posts", "GET"); err != nil {
		t.Fatalf("grant editors policy failed: %v", err)
	}
	if err := svc.GrantRolePolicy("auditors", "/admin/users", "GET"); err != nil {
		t.Fatalf("grant auditors policy failed: %v", err)
	}

	if err := svc.SetAdminRoles(2, []string{"editors"}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:editors" {
		t.Fatalf("roles want [role:editors], got=%v", roles)
	}

	if err := svc.SetAdminRoles(2, []string{"auditors"}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err = svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:auditors" {
		t.Fatalf("roles want [role:auditors], got=%v", roles)
	}

	allow, err := svc.EnforceAdmin(2, "/admin/posts", "GET")
	if err != nil {
		t.Fatalf("enforce old role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected old role permission removed")
	}

	allow, err = svc.EnforceAdmin(2, "/admin/users", "GET")
	if err != nil {
		t.Fatalf("enforce new role failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected new role permission granted")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/posts/:id", want: "/admin/posts/:id"},
		{in: "/admin/posts/:id", want: "/admin/posts/:id"},
		{in: "admin/posts", want: "/admin/posts"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	if err := svc.SetAdminRoles(3, []string{"moderator"}); err != nil {
		t.Fatalf("set admin roles failed: %v", err)
	}

	// moderator 继承 readonly_auditor 的只读权限
	allow, err := svc.EnforceAdmin(3, "/admin/users", "GET")
	if err != nil {
		t.Fatalf("enforce inherited readonly failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected inherited readonly permission")
	}

	allow, err = svc.EnforceAdmin(3, "/admin/categories/:id", "PUT")
	if err != nil {
		t.Fatalf("enforce moderator write failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected moderator category write permission")
	}

	allow, err = svc.EnforceAdmin(3, "/admin/users/status", "PUT")
	if err != nil {
		t.Fatalf("enforce moderator user write failed: %v", err)
	}
	if allow {
		t.Fatalf("expected moderator denied user status write")
	}

	if err := svc.SetAdminRoles(4, []string{"readonly_auditor"}); err != nil {
		t.Fatalf("set auditor roles failed: %v", err)
	}
	allow, err = svc.EnforceAdmin(4, "/admin/categories", "POST")
	if err != nil {
		t.Fatalf("enforce readonly write failed: %v", err)
	}
	if allow {
		t.Fatalf("expected readonly role deny write")
	}
}

package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var policies = [][]string{
	{"admin", "employee", "manage"},
	{"admin", "department", "manage"},
	{"admin", "schedule", "manage"},
	{"admin", "leave_type", "manage"},
	{"admin", "allowance", "manage"},
	{"admin", "audit", "read"},

	{"supervisor", "leave", "decide"},
	{"supervisor", "report", "read"},

	{"employee", "employee", "read"},
	{"employee", "department", "read"},
	{"employee", "schedule", "read"},
	{"employee", "leave_type", "read"},
	{"employee", "leave", "read"},
	{"employee", "leave", "request"},
	{"employee", "allowance", "read"},
	{"employee", "teamview", "read"},
	{"employee", "feed", "manage"},
}

// Role inheritance: admin > supervisor > employee.
var groupings = [][]string{
	{"admin", "supervisor"},
	{"supervisor", "employee"},
}

// NewEnforcer builds the role enforcer from the embedded model and policy
// tables. Roles are computed per request from the employee record, so no
// storage adapter is involved.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicies(groupings); err != nil {
		return nil, err
	}
	return e, nil
}

package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// The capability model is static: subjects are roles, objects are resources,
// actions are operations. Keeping it embedded avoids a config file dependency
// and makes the whole permission surface reviewable in one place.
const capabilityModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// capabilityTable maps each role to the operations it may perform. Every
// role-gated route declares its requirement through Require; no handler
// branches on role inline.
var capabilityTable = [][3]string{
	{"employee", "attendance", "checkin"},
	{"employee", "attendance", "checkout"},
	{"employee", "attendance", "read_self"},
	{"employee", "dashboard", "read_self"},

	// Managers may check out their own day but not check in as an employee.
	{"manager", "attendance", "checkout"},
	{"manager", "attendance", "read_self"},
	{"manager", "attendance", "read_all"},
	{"manager", "attendance", "export"},
	{"manager", "dashboard", "read_self"},
	{"manager", "dashboard", "read_fleet"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(capabilityModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range capabilityTable {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}

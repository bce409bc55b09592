package authz

import (
	"context"

	"go-timeoff/internal/department"
	"go-timeoff/internal/employee"
)

// Predicate answers who may act on whom inside one company. Admins may act
// on anyone; a supervisor may act on employees of the departments they
// manage or supervise.
type Predicate struct {
	deptRepo department.Repository
	empRepo  employee.Repository
}

func NewPredicate(deptRepo department.Repository, empRepo employee.Repository) *Predicate {
	return &Predicate{deptRepo: deptRepo, empRepo: empRepo}
}

func (p *Predicate) CanManage(ctx context.Context, actor, target *employee.Employee) (bool, error) {
	if actor.CompanyID != target.CompanyID {
		return false, nil
	}
	if actor.Admin {
		return true, nil
	}
	deptIDs, err := p.deptRepo.SupervisedDepartmentIDs(ctx, actor.ID.String())
	if err != nil {
		return false, err
	}
	for _, id := range deptIDs {
		if id == target.DepartmentID {
			return true, nil
		}
	}
	return false, nil
}

// VisibleEmployees lists the active employees the actor is allowed to see
// in full detail: the whole company for admins, supervised departments plus
// themselves for everyone else.
func (p *Predicate) VisibleEmployees(ctx context.Context, actor *employee.Employee) ([]employee.Employee, error) {
	if actor.Admin {
		return p.empRepo.FindActiveByCompany(ctx, actor.CompanyID.String())
	}

	deptIDs, err := p.deptRepo.SupervisedDepartmentIDs(ctx, actor.ID.String())
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(deptIDs))
	for _, id := range deptIDs {
		ids = append(ids, id.String())
	}

	var visible []employee.Employee
	if len(ids) > 0 {
		visible, err = p.empRepo.FindActiveByDepartments(ctx, actor.CompanyID.String(), ids)
		if err != nil {
			return nil, err
		}
	}

	for _, e := range visible {
		if e.ID == actor.ID {
			return visible, nil
		}
	}
	return append(visible, *actor), nil
}

// SupervisorsOf returns the employees who supervise the given employee's
// department.
func (p *Predicate) SupervisorsOf(ctx context.Context, emp *employee.Employee) ([]employee.Employee, error) {
	ids, err := p.deptRepo.SupervisorIDs(ctx, emp.DepartmentID.String())
	if err != nil {
		return nil, err
	}

	supervisors := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		sup, err := p.empRepo.FindByIDAndCompany(ctx, emp.CompanyID.String(), id.String())
		if err != nil {
			return nil, err
		}
		if sup != nil {
			supervisors = append(supervisors, *sup)
		}
	}
	return supervisors, nil
}

// SupervisedDepartmentIDs exposes the raw department list for callers that
// filter by department rather than by employee.
func (p *Predicate) SupervisedDepartmentIDs(ctx context.Context, actorID string) ([]string, error) {
	deptIDs, err := p.deptRepo.SupervisedDepartmentIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(deptIDs))
	for _, id := range deptIDs {
		out = append(out, id.String())
	}
	return out, nil
}

package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/talentfold/hr-portal/internal/core/domain/department"
	"github.com/talentfold/hr-portal/internal/core/domain/employee"
	"github.com/talentfold/hr-portal/internal/core/domain/settings"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

// Utility helpers
func cacheSetSilently(c ports.KeyValueCache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c ports.KeyValueCache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// loadFullListWithSingleflight coalesces a full-list load using singleflight, caches the
// full list and optional count, and returns the list. The loader should fetch the
// complete list when called.
func loadFullListWithSingleflight[T any](cache ports.KeyValueCache, ctx context.Context, sfKey, listKey, countKey string, ttl time.Duration, loader func() ([]T, error)) ([]T, error) {
	if cache != nil {
		if v, ok := cacheGet[[]T](cache, ctx, listKey); ok {
			return *v, nil
		}
	}
	res, err, _ := sf.Do(sfKey, func() (any, error) {
		if cache != nil {
			if v, ok := cacheGet[[]T](cache, ctx, listKey); ok {
				return *v, nil
			}
		}
		all, err := loader()
		if err != nil {
			return nil, err
		}
		if cache != nil {
			cacheSetSilently(cache, ctx, listKey, all, ttl)
			if countKey != "" {
				cacheSetSilently(cache, ctx, countKey, len(all), ttl)
			}
		}
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	all, ok := res.([]T)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return all, nil
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// CachingEmployeeRepository decorates an EmployeeRepository with cache-aside.
type CachingEmployeeRepository struct {
	inner ports.EmployeeRepository
	cache ports.KeyValueCache
	ttl   time.Duration
}

func NewCachingEmployeeRepository(inner ports.EmployeeRepository, cache ports.KeyValueCache, ttl time.Duration) ports.EmployeeRepository {
	return &CachingEmployeeRepository{inner: inner, cache: cache, ttl: ttl}
}

func employeeListKeys(departmentID uuid.UUID) (listKey, countKey string) {
	scope := "all"
	if departmentID != uuid.Nil {
		scope = departmentID.String()
	}
	return "employees:" + scope + ":all", "employees:" + scope + ":count"
}

func (c *CachingEmployeeRepository) invalidateLists(ctx context.Context, departmentID uuid.UUID) {
	if c.cache == nil {
		return
	}
	for _, id := range []uuid.UUID{uuid.Nil, departmentID} {
		listKey, countKey := employeeListKeys(id)
		_ = c.cache.Delete(ctx, listKey)
		_ = c.cache.Delete(ctx, countKey)
	}
}

func (c *CachingEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if err := c.inner.Create(ctx, e); err != nil {
		return err
	}
	cacheSetSilently(c.cache, ctx, "employee:id:"+e.ID.String(), e, c.ttl)
	cacheSetSilently(c.cache, ctx, "employee:email:"+e.Email, e, c.ttl)
	c.invalidateLists(ctx, e.DepartmentID)
	return nil
}

func (c *CachingEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	if v, ok := cacheGet[employee.Employee](c.cache, ctx, "employee:id:"+id.String()); ok {
		return v, nil
	}
	e, err := c.inner.GetByID(ctx, id)
	if err == nil {
		cacheSetSilently(c.cache, ctx, "employee:id:"+id.String(), e, c.ttl)
		cacheSetSilently(c.cache, ctx, "employee:email:"+e.Email, e, c.ttl)
	}
	return e, err
}

func (c *CachingEmployeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if v, ok := cacheGet[employee.Employee](c.cache, ctx, "employee:email:"+email); ok {
		return v, nil
	}
	e, err := c.inner.GetByEmail(ctx, email)
	if err == nil {
		cacheSetSilently(c.cache, ctx, "employee:email:"+email, e, c.ttl)
		cacheSetSilently(c.cache, ctx, "employee:id:"+e.ID.String(), e, c.ttl)
	}
	return e, err
}

// GetByExternalID is only used by the directory sync job, which must see the
// database state, so it is deliberately not cached.
func (c *CachingEmployeeRepository) GetByExternalID(ctx context.Context, externalID string) (*employee.Employee, error) {
	return c.inner.GetByExternalID(ctx, externalID)
}

func (c *CachingEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if err := c.inner.Update(ctx, e); err != nil {
		return err
	}
	// Overwrite cache
	cacheSetSilently(c.cache, ctx, "employee:id:"+e.ID.String(), e, c.ttl)
	cacheSetSilently(c.cache, ctx, "employee:email:"+e.Email, e, c.ttl)
	c.invalidateLists(ctx, e.DepartmentID)
	return nil
}

func (c *CachingEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Need current record to delete email key
	current, _ := c.inner.GetByID(ctx, id)
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Delete(ctx, "employee:id:"+id.String())
		if current != nil {
			_ = c.cache.Delete(ctx, "employee:email:"+current.Email)
			c.invalidateLists(ctx, current.DepartmentID)
		} else {
			c.invalidateLists(ctx, uuid.Nil)
		}
	}
	return nil
}

func (c *CachingEmployeeRepository) List(ctx context.Context, departmentID uuid.UUID, limit, offset int) ([]*employee.Employee, error) {
	listKey, countKey := employeeListKeys(departmentID)
	loader := func() ([]*employee.Employee, error) {
		cnt, err := c.inner.Count(ctx, departmentID)
		if err != nil {
			return nil, err
		}
		return c.inner.List(ctx, departmentID, cnt, 0)
	}
	all, err := loadFullListWithSingleflight(c.cache, ctx, listKey, listKey, countKey, c.ttl, loader)
	if err != nil {
		return nil, err
	}
	return paginate(all, limit, offset), nil
}

func (c *CachingEmployeeRepository) Count(ctx context.Context, departmentID uuid.UUID) (int, error) {
	listKey, countKey := employeeListKeys(departmentID)
	if c.cache != nil {
		if v, ok := cacheGet[int](c.cache, ctx, countKey); ok {
			return *v, nil
		}
		if v, ok := cacheGet[[]*employee.Employee](c.cache, ctx, listKey); ok {
			return len(*v), nil
		}
	}
	cnt, err := c.inner.Count(ctx, departmentID)
	if err == nil && c.cache != nil {
		cacheSetSilently(c.cache, ctx, countKey, cnt, c.ttl)
	}
	return cnt, err
}

// CachingDepartmentRepository decorates a DepartmentRepository with cache-aside.
type CachingDepartmentRepository struct {
	inner ports.DepartmentRepository
	cache ports.KeyValueCache
	ttl   time.Duration
}

func NewCachingDepartmentRepository(inner ports.DepartmentRepository, cache ports.KeyValueCache, ttl time.Duration) ports.DepartmentRepository {
	return &CachingDepartmentRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingDepartmentRepository) Create(ctx context.Context, d *department.Department) error {
	if err := c.inner.Create(ctx, d); err != nil {
		return err
	}
	cacheSetSilently(c.cache, ctx, "department:id:"+d.ID.String(), d, c.ttl)
	cacheSetSilently(c.cache, ctx, "department:code:"+d.Code, d, c.ttl)
	if c.cache != nil {
		// Invalidate full-list / count caches
		_ = c.cache.Delete(ctx, "departments:all")
		_ = c.cache.Delete(ctx, "departments:count")
	}
	return nil
}

func (c *CachingDepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*department.Department, error) {
	if v, ok := cacheGet[department.Department](c.cache, ctx, "department:id:"+id.String()); ok {
		return v, nil
	}
	d, err := c.inner.GetByID(ctx, id)
	if err == nil {
		cacheSetSilently(c.cache, ctx, "department:id:"+id.String(), d, c.ttl)
		cacheSetSilently(c.cache, ctx, "department:code:"+d.Code, d, c.ttl)
	}
	return d, err
}

func (c *CachingDepartmentRepository) GetByCode(ctx context.Context, code string) (*department.Department, error) {
	if v, ok := cacheGet[department.Department](c.cache, ctx, "department:code:"+code); ok {
		return v, nil
	}
	d, err := c.inner.GetByCode(ctx, code)
	if err == nil {
		cacheSetSilently(c.cache, ctx, "department:code:"+code, d, c.ttl)
		cacheSetSilently(c.cache, ctx, "department:id:"+d.ID.String(), d, c.ttl)
	}
	return d, err
}

func (c *CachingDepartmentRepository) Update(ctx context.Context, d *department.Department) error {
	if err := c.inner.Update(ctx, d); err != nil {
		return err
	}
	cacheSetSilently(c.cache, ctx, "department:id:"+d.ID.String(), d, c.ttl)
	cacheSetSilently(c.cache, ctx, "department:code:"+d.Code, d, c.ttl)
	if c.cache != nil {
		_ = c.cache.Delete(ctx, "departments:all")
		_ = c.cache.Delete(ctx, "departments:count")
	}
	return nil
}

func (c *CachingDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Need code to delete code key
	d, _ := c.inner.GetByID(ctx, id)
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Delete(ctx, "department:id:"+id.String())
		if d != nil {
			_ = c.cache.Delete(ctx, "department:code:"+d.Code)
		}
		_ = c.cache.Delete(ctx, "departments:all")
		_ = c.cache.Delete(ctx, "departments:count")
	}
	return nil
}

func (c *CachingDepartmentRepository) List(ctx context.Context, limit, offset int) ([]*department.Department, error) {
	loader := func() ([]*department.Department, error) {
		cnt, err := c.inner.Count(ctx)
		if err != nil {
			return nil, err
		}
		return c.inner.List(ctx, cnt, 0)
	}
	all, err := loadFullListWithSingleflight(c.cache, ctx, "departments:all", "departments:all", "departments:count", c.ttl, loader)
	if err != nil {
		return nil, err
	}
	return paginate(all, limit, offset), nil
}

func (c *CachingDepartmentRepository) Count(ctx context.Context) (int, error) {
	if c.cache != nil {
		if v, ok := cacheGet[int](c.cache, ctx, "departments:count"); ok {
			return *v, nil
		}
		if v, ok := cacheGet[[]*department.Department](c.cache, ctx, "departments:all"); ok {
			return len(*v), nil
		}
	}
	cnt, err := c.inner.Count(ctx)
	if err == nil && c.cache != nil {
		cacheSetSilently(c.cache, ctx, "departments:count", cnt, c.ttl)
	}
	return cnt, err
}

// CachingSettingsRepository caches settings by key.
type CachingSettingsRepository struct {
	inner ports.SettingsRepository
	cache ports.KeyValueCache
	ttl   time.Duration
}

func NewCachingSettingsRepository(inner ports.SettingsRepository, cache ports.KeyValueCache, ttl time.Duration) ports.SettingsRepository {
	return &CachingSettingsRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingSettingsRepository) invalidateLists(ctx context.Context, category string) {
	if c.cache == nil {
		return
	}
	for _, cat := range []string{"", category} {
		_ = c.cache.Delete(ctx, "settings:"+cat+":all")
		_ = c.cache.Delete(ctx, "settings:"+cat+":count")
	}
}

func (c *CachingSettingsRepository) Upsert(ctx context.Context, s *settings.Setting) error {
	if err := c.inner.Upsert(ctx, s); err != nil {
		return err
	}
	cacheSetSilently(c.cache, ctx, "setting:key:"+s.Key, s, c.ttl)
	c.invalidateLists(ctx, s.Category)
	return nil
}

func (c *CachingSettingsRepository) GetByKey(ctx context.Context, key string) (*settings.Setting, error) {
	if v, ok := cacheGet[settings.Setting](c.cache, ctx, "setting:key:"+key); ok {
		return v, nil
	}
	s, err := c.inner.GetByKey(ctx, key)
	if err == nil {
		cacheSetSilently(c.cache, ctx, "setting:key:"+key, s, c.ttl)
	}
	return s, err
}

func (c *CachingSettingsRepository) Delete(ctx context.Context, key string) error {
	current, _ := c.inner.GetByKey(ctx, key)
	if err := c.inner.Delete(ctx, key); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Delete(ctx, "setting:key:"+key)
		if current != nil {
			c.invalidateLists(ctx, current.Category)
		} else {
			c.invalidateLists(ctx, "")
		}
	}
	return nil
}

func (c *CachingSettingsRepository) List(ctx context.Context, category string, limit, offset int) ([]*settings.Setting, error) {
	listKey := "settings:" + category + ":all"
	countKey := "settings:" + category + ":count"
	loader := func() ([]*settings.Setting, error) {
		cnt, err := c.inner.Count(ctx, category)
		if err != nil {
			return nil, err
		}
		return c.inner.List(ctx, category, cnt, 0)
	}
	all, err := loadFullListWithSingleflight(c.cache, ctx, listKey, listKey, countKey, c.ttl, loader)
	if err != nil {
		return nil, err
	}
	return paginate(all, limit, offset), nil
}

func (c *CachingSettingsRepository) Count(ctx context.Context, category string) (int, error) {
	listKey := "settings:" + category + ":all"
	countKey := "settings:" + category + ":count"
	if c.cache != nil {
		if v, ok := cacheGet[int](c.cache, ctx, countKey); ok {
			return *v, nil
		}
		if v, ok := cacheGet[[]*settings.Setting](c.cache, ctx, listKey); ok {
			return len(*v), nil
		}
	}
	cnt, err := c.inner.Count(ctx, category)
	if err == nil && c.cache != nil {
		cacheSetSilently(c.cache, ctx, countKey, cnt, c.ttl)
	}
	return cnt, err
}

// Simple validation to ensure decorators implement interfaces at compile time
var _ ports.EmployeeRepository = (*CachingEmployeeRepository)(nil)
var _ ports.DepartmentRepository = (*CachingDepartmentRepository)(nil)
var _ ports.SettingsRepository = (*CachingSettingsRepository)(nil)

// singleflight group for coalescing cache-miss loads in-process
var sf singleflight.Group

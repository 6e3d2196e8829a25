package category

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/baitboost/catalog/pkg/errors"
)

// memRepo 内存实现，仅用于测试领域规则
type memRepo struct {
	nextID   uint
	items    map[uint]*Category
	products map[uint]int64
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[uint]*Category{}, products: map[uint]int64{}}
}

func (r *memRepo) Create(_ context.Context, c *Category) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memRepo) Update(_ context.Context, c *Category) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	for _, c := range r.items {
		if c.ParentID != nil && *c.ParentID == id {
			c.ParentID = nil
		}
	}
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) FindBySlug(_ context.Context, slug string) (*Category, error) {
	for _, c := range r.items {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (r *memRepo) ExistsBySlug(_ context.Context, slug string, excludeID uint) (bool, error) {
	for _, c := range r.items {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) List(_ context.Context, params ListParams) ([]*Category, int64, error) {
	var out []*Category
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *memRepo) Children(_ context.Context, parentID uint) ([]*Category, error) {
	var out []*Category
	for _, c := range r.items {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memRepo) CountProducts(_ context.Context, id uint) (int64, error) {
	return r.products[id], nil
}

func uintPtr(v uint) *uint { return &v }

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	c, err := svc.Create(ctx, Input{Name: "Canne da Spinning", SortOrder: 2})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "canne-da-spinning", c.Slug)
	assert.True(t, c.IsRoot())
	assert.False(t, c.CreatedAt.IsZero())

	_, err = svc.Create(ctx, Input{Name: "Canne da spinning"})
	assert.ErrorIs(t, err, ErrSlugDuplicate, "自动生成的slug也必须唯一")

	child, err := svc.Create(ctx, Input{Name: "Ultralight", ParentID: &c.ID})
	require.NoError(t, err)
	assert.Equal(t, c.ID, *child.ParentID)
}

func TestService_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	_, err := svc.Create(ctx, Input{Name: ""})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidParams))

	_, err = svc.Create(ctx, Input{Name: "Esche", SortOrder: -1})
	assert.ErrorIs(t, err, ErrInvalidSortOrder)

	_, err = svc.Create(ctx, Input{Name: "Esche", ParentID: uintPtr(99)})
	assert.ErrorIs(t, err, ErrParentNotFound)
}

// rewordingRepo 返回改写过消息的不存在错误，与按ID加上下文的仓储一致
type rewordingRepo struct {
	*memRepo
}

func (r rewordingRepo) FindByID(ctx context.Context, id uint) (*Category, error) {
	c, err := r.memRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCategoryNotFound.WithMessage("分类不存在: 99")
	}
	return c, nil
}

func TestService_Create_ParentNotFoundReworded(t *testing.T) {
	svc := NewService(rewordingRepo{newMemRepo()})

	_, err := svc.Create(context.Background(), Input{Name: "Esche", ParentID: uintPtr(99)})
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestService_Update_Cycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	root, _ := svc.Create(ctx, Input{Name: "Canne"})
	mid, _ := svc.Create(ctx, Input{Name: "Spinning", ParentID: &root.ID})
	leaf, _ := svc.Create(ctx, Input{Name: "Light", ParentID: &mid.ID})

	_, err := svc.Update(ctx, root.Slug, Input{Name: "Canne", ParentID: &leaf.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)

	_, err = svc.Update(ctx, root.Slug, Input{Name: "Canne", ParentID: &root.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle, "不能成为自己的父分类")

	moved, err := svc.Update(ctx, leaf.Slug, Input{Name: "Light", Slug: "light", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *moved.ParentID)
}

func TestService_Update_Slug(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	a, _ := svc.Create(ctx, Input{Name: "Mulinelli"})
	_, _ = svc.Create(ctx, Input{Name: "Esche"})

	_, err := svc.Update(ctx, a.Slug, Input{Name: "Esche"})
	assert.ErrorIs(t, err, ErrSlugDuplicate)

	updated, err := svc.Update(ctx, a.Slug, Input{Name: "Mulinelli", Description: "Tutti i mulinelli"})
	require.NoError(t, err, "保持原slug不算冲突")
	assert.Equal(t, "Tutti i mulinelli", updated.Description)

	_, err = svc.Update(ctx, "missing", Input{Name: "X"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo)

	parent, _ := svc.Create(ctx, Input{Name: "Canne"})
	child, _ := svc.Create(ctx, Input{Name: "Bolognesi", ParentID: &parent.ID})

	repo.products[parent.ID] = 3
	_, err := svc.Delete(ctx, parent.Slug)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	repo.products[parent.ID] = 0
	deleted, err := svc.Delete(ctx, parent.Slug)
	require.NoError(t, err)
	assert.Equal(t, parent.ID, deleted.ID)

	orphan, err := svc.GetBySlug(ctx, child.Slug)
	require.NoError(t, err)
	assert.True(t, orphan.IsRoot(), "子分类的父分类被置空")
}

func TestService_List_Ordering(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	for _, o := range []string{"", "name", "-name", "sort_order", "-sort_order"} {
		_, _, err := svc.List(ctx, ListParams{Ordering: o})
		assert.NoError(t, err, o)
	}

	_, _, err := svc.List(ctx, ListParams{Ordering: "created_at"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidParams))
}

func TestService_Children(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	root, _ := svc.Create(ctx, Input{Name: "Esche"})
	_, _ = svc.Create(ctx, Input{Name: "Artificiali", ParentID: &root.ID})
	_, _ = svc.Create(ctx, Input{Name: "Naturali", ParentID: &root.ID})

	children, err := svc.Children(ctx, root.Slug)
	require.NoError(t, err)
	assert.Len(t, children, 2)

	_, err = svc.Children(ctx, "missing")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

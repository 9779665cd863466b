package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EmployeeFilter captures listing parameters.
type EmployeeFilter struct {
	Department *string
	Limit      int
	Offset     int
}

// EmployeeRepository encapsulates employee document persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employeeID string, update domain.EmployeeUpdate) error
	Delete(ctx context.Context, employeeID string) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	AverageSalaryByDepartment(ctx context.Context, department *string) ([]domain.DepartmentSalary, error)
	SearchBySkills(ctx context.Context, skills []string) ([]domain.Employee, error)
}

type employeeRepository struct {
	collection *mongo.Collection
}

// NewEmployeeRepository returns a MongoDB-backed implementation.
func NewEmployeeRepository(collection *mongo.Collection) EmployeeRepository {
	return &employeeRepository{collection: collection}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	_, err := r.collection.InsertOne(ctx, employee)
	return err
}

func (r *employeeRepository) Update(ctx context.Context, employeeID string, update domain.EmployeeUpdate) error {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Department != nil {
		set["department"] = *update.Department
	}
	if update.Salary != nil {
		set["salary"] = *update.Salary
	}
	if update.JoiningDate != nil {
		set["joining_date"] = *update.JoiningDate
	}
	if update.Skills != nil {
		set["skills"] = update.Skills
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"employee_id": employeeID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, employeeID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	var employee domain.Employee
	if err := r.collection.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&employee); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := bson.M{}
	if filter.Department != nil {
		query["department"] = *filter.Department
	}

	opts := options.Find().SetSort(bson.D{{Key: "joining_date", Value: -1}})
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return decodeEmployees(ctx, cursor)
}

func (r *employeeRepository) AverageSalaryByDepartment(ctx context.Context, department *string) ([]domain.DepartmentSalary, error) {
	pipeline := mongo.Pipeline{}
	if department != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{{Key: "department", Value: *department}}}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$department"},
		{Key: "avg_salary", Value: bson.D{{Key: "$avg", Value: "$salary"}}},
	}}})

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []domain.DepartmentSalary{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *employeeRepository) SearchBySkills(ctx context.Context, skills []string) ([]domain.Employee, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"skills": bson.M{"$all": skills}})
	if err != nil {
		return nil, err
	}
	return decodeEmployees(ctx, cursor)
}

func decodeEmployees(ctx context.Context, cursor *mongo.Cursor) ([]domain.Employee, error) {
	defer cursor.Close(ctx)

	employees := []domain.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

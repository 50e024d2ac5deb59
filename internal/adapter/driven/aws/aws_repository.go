package aws

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	budgetTypes "github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/finops-rateio/internal/domain/entity"
	"github.com/diillson/finops-rateio/internal/domain/repository"
)

const (
	serviceSTS          = "sts"
	serviceCostExplorer = "costexplorer"
	serviceBudgets      = "budgets"
	serviceS3           = "s3"

	// Cost Explorer e Budgets só respondem em us-east-1.
	globalRegion = "us-east-1"

	costMetric = "UnblendedCost"

	// Grupos abaixo de um centavo não viram título.
	minServiceCost = 0.005
)

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// AWSRepositoryImpl implementa o AWSRepository com cache de clientes.
type AWSRepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewAWSRepository cria uma nova implementação do AWSRepository.
func NewAWSRepository() repository.AWSRepository {
	return newAWSRepository()
}

func newAWSRepository() *AWSRepositoryImpl {
	return &AWSRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func clientKey(profile, region, service string) string {
	switch service {
	case serviceCostExplorer, serviceBudgets:
		region = globalRegion
	}
	return fmt.Sprintf("%s-%s-%s", profile, region, service)
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, region, service string) (interface{}, error) {
	cacheKey := clientKey(profile, region, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case serviceSTS:
		client = sts.NewFromConfig(regionalCfg)
	case serviceCostExplorer:
		regionalCfg.Region = globalRegion
		client = costexplorer.NewFromConfig(regionalCfg)
	case serviceBudgets:
		regionalCfg.Region = globalRegion
		client = budgets.NewFromConfig(regionalCfg)
	case serviceS3:
		client = s3.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	client, err := r.getServiceClient(ctx, profile, globalRegion, serviceSTS)
	if err != nil {
		return "", err
	}
	stsClient, ok := client.(stsAPI)
	if !ok {
		return "", fmt.Errorf("unexpected STS client type %T", client)
	}

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %s: %w", profile, err)
	}
	return aws.ToString(result.Account), nil
}

// GetBudgets lista os budgets da conta. O valor planejado é o limite
// planejado do mês de period, quando o budget tem limites planejados.
func (r *AWSRepositoryImpl) GetBudgets(ctx context.Context, profile string, period time.Time) ([]entity.BudgetInfo, error) {
	client, err := r.getServiceClient(ctx, profile, "", serviceBudgets)
	if err != nil {
		return nil, err
	}
	budgetsClient, ok := client.(budgets.DescribeBudgetsAPIClient)
	if !ok {
		return nil, fmt.Errorf("unexpected Budgets client type %T", client)
	}

	accountID, err := r.GetAccountID(ctx, profile)
	if err != nil {
		return nil, err
	}

	monthKey := strconv.FormatInt(monthStart(period).Unix(), 10)

	var budgetsData []entity.BudgetInfo
	paginator := budgets.NewDescribeBudgetsPaginator(budgetsClient, &budgets.DescribeBudgetsInput{
		AccountId: aws.String(accountID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error describing budgets for account %s: %w", accountID, err)
		}
		for _, budget := range page.Budgets {
			budgetsData = append(budgetsData, toBudgetInfo(budget, monthKey))
		}
	}

	return budgetsData, nil
}

func toBudgetInfo(budget budgetTypes.Budget, monthKey string) entity.BudgetInfo {
	b := entity.BudgetInfo{Name: aws.ToString(budget.BudgetName)}
	if budget.BudgetLimit != nil {
		b.Limit = parseAmount(budget.BudgetLimit.Amount)
	}
	b.Planned = b.Limit
	if planned, ok := budget.PlannedBudgetLimits[monthKey]; ok {
		b.Planned = parseAmount(planned.Amount)
	}
	if budget.CalculatedSpend != nil && budget.CalculatedSpend.ActualSpend != nil {
		b.Actual = parseAmount(budget.CalculatedSpend.ActualSpend.Amount)
	}
	return b
}

// GetServiceCosts agrupa o gasto por SERVICE em [start, end), somando todas
// as páginas e intervalos retornados.
func (r *AWSRepositoryImpl) GetServiceCosts(ctx context.Context, profile string, start, end time.Time, tags []string) (entity.CostData, error) {
	client, err := r.getServiceClient(ctx, profile, "", serviceCostExplorer)
	if err != nil {
		return entity.CostData{}, err
	}
	ceClient, ok := client.(costExplorerAPI)
	if !ok {
		return entity.CostData{}, fmt.Errorf("unexpected Cost Explorer client type %T", client)
	}

	filter, err := parseTagFilter(tags)
	if err != nil {
		return entity.CostData{}, err
	}

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
		Filter: filter,
	}

	byService := make(map[string]float64)
	for {
		result, err := ceClient.GetCostAndUsage(ctx, input)
		if err != nil {
			return entity.CostData{}, fmt.Errorf("failed to get cost by service: %w", err)
		}
		for _, byTime := range result.ResultsByTime {
			for _, group := range byTime.Groups {
				if len(group.Keys) == 0 {
					continue
				}
				metric, ok := group.Metrics[costMetric]
				if !ok {
					continue
				}
				byService[group.Keys[0]] += parseAmount(metric.Amount)
			}
		}
		if aws.ToString(result.NextPageToken) == "" {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	serviceCosts := make([]entity.ServiceCost, 0, len(byService))
	for name, cost := range byService {
		if cost < minServiceCost {
			continue
		}
		serviceCosts = append(serviceCosts, entity.ServiceCost{ServiceName: name, Cost: cost})
	}
	sort.Slice(serviceCosts, func(i, j int) bool {
		if serviceCosts[i].Cost != serviceCosts[j].Cost {
			return serviceCosts[i].Cost > serviceCosts[j].Cost
		}
		return serviceCosts[i].ServiceName < serviceCosts[j].ServiceName
	})

	costData := entity.CostData{
		PeriodStart:  start,
		PeriodEnd:    end,
		ServiceCosts: serviceCosts,
	}
	costData.AccountID, _ = r.GetAccountID(ctx, profile)

	return costData, nil
}

// UploadReports envia cada arquivo para s3://bucket/prefix/<nome do arquivo>.
func (r *AWSRepositoryImpl) UploadReports(ctx context.Context, profile, bucket, prefix string, paths []string) ([]string, error) {
	if bucket == "" {
		return nil, fmt.Errorf("no S3 bucket configured")
	}

	client, err := r.getServiceClient(ctx, profile, "", serviceS3)
	if err != nil {
		return nil, err
	}
	s3Client, ok := client.(s3API)
	if !ok {
		return nil, fmt.Errorf("unexpected S3 client type %T", client)
	}

	uris := make([]string, 0, len(paths))
	for _, p := range paths {
		key := path.Join(strings.Trim(prefix, "/"), filepath.Base(p))
		if err := putFile(ctx, s3Client, bucket, key, p); err != nil {
			return uris, err
		}
		uris = append(uris, fmt.Sprintf("s3://%s/%s", bucket, key))
	}
	return uris, nil
}

func putFile(ctx context.Context, client s3API, bucket, key, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("error opening report %s: %w", filePath, err)
	}
	defer f.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if contentType := mime.TypeByExtension(filepath.Ext(filePath)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("error uploading %s to s3://%s/%s: %w", filePath, bucket, key, err)
	}
	return nil
}

func parseTagFilter(tags []string) (*ceTypes.Expression, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	var expressions []ceTypes.Expression
	for _, t := range tags {
		parts := strings.SplitN(t, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid tag format: %s (expected Key=Value)", t)
		}
		expressions = append(expressions, ceTypes.Expression{
			Tags: &ceTypes.TagValues{
				Key:    aws.String(parts[0]),
				Values: []string{parts[1]},
			},
		})
	}

	if len(expressions) == 1 {
		return &expressions[0], nil
	}

	return &ceTypes.Expression{And: expressions}, nil
}

func parseAmount(amount *string) float64 {
	v, _ := strconv.ParseFloat(aws.ToString(amount), 64)
	return v
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

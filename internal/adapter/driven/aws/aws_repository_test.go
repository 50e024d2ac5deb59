package aws

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	budgetTypes "github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProfile = "finance"

type fakeSTS struct {
	account string
	err     error
}

func (f *fakeSTS) GetCallerIdentity(_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String(f.account)}, nil
}

type fakeBudgets struct {
	pages [][]budgetTypes.Budget
	calls []*budgets.DescribeBudgetsInput
}

func (f *fakeBudgets) DescribeBudgets(_ context.Context, in *budgets.DescribeBudgetsInput, _ ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error) {
	f.calls = append(f.calls, in)
	page := 0
	if in.NextToken != nil {
		page, _ = strconv.Atoi(*in.NextToken)
	}
	out := &budgets.DescribeBudgetsOutput{Budgets: f.pages[page]}
	if page+1 < len(f.pages) {
		out.NextToken = aws.String(strconv.Itoa(page + 1))
	}
	return out, nil
}

type fakeCostExplorer struct {
	pages []*costexplorer.GetCostAndUsageOutput
	calls []*costexplorer.GetCostAndUsageInput
	err   error
}

func (f *fakeCostExplorer) GetCostAndUsage(_ context.Context, in *costexplorer.GetCostAndUsageInput, _ ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *in
	f.calls = append(f.calls, &copied)
	return f.pages[len(f.calls)-1], nil
}

type uploaded struct {
	bucket, key, contentType, body string
}

type fakeS3 struct {
	objects []uploaded
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects = append(f.objects, uploaded{
		bucket:      aws.ToString(in.Bucket),
		key:         aws.ToString(in.Key),
		contentType: aws.ToString(in.ContentType),
		body:        string(body),
	})
	return &s3.PutObjectOutput{}, nil
}

func newTestRepository(clients map[string]interface{}) *AWSRepositoryImpl {
	repo := newAWSRepository()
	for service, client := range clients {
		region := ""
		if service == serviceSTS {
			region = globalRegion
		}
		repo.clientCache[clientKey(testProfile, region, service)] = client
	}
	return repo
}

func costGroup(service, amount string) ceTypes.Group {
	return ceTypes.Group{
		Keys:    []string{service},
		Metrics: map[string]ceTypes.MetricValue{costMetric: {Amount: aws.String(amount)}},
	}
}

func TestGetAccountID(t *testing.T) {
	repo := newTestRepository(map[string]interface{}{serviceSTS: &fakeSTS{account: "123456789012"}})

	id, err := repo.GetAccountID(context.Background(), testProfile)
	require.NoError(t, err)
	assert.Equal(t, "123456789012", id)

	failing := newTestRepository(map[string]interface{}{serviceSTS: &fakeSTS{err: errors.New("expired token")}})
	_, err = failing.GetAccountID(context.Background(), testProfile)
	require.ErrorContains(t, err, "expired token")
}

func TestGetBudgets_PlannedLimitForPeriod(t *testing.T) {
	period := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	march := strconv.FormatInt(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC).Unix(), 10)
	april := strconv.FormatInt(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC).Unix(), 10)

	fb := &fakeBudgets{pages: [][]budgetTypes.Budget{
		{{
			BudgetName:  aws.String("plataforma"),
			BudgetLimit: &budgetTypes.Spend{Amount: aws.String("1000.0"), Unit: aws.String("USD")},
			PlannedBudgetLimits: map[string]budgetTypes.Spend{
				march: {Amount: aws.String("1200.5")},
				april: {Amount: aws.String("900")},
			},
			CalculatedSpend: &budgetTypes.CalculatedSpend{
				ActualSpend: &budgetTypes.Spend{Amount: aws.String("310.25")},
			},
		}},
		{{
			BudgetName:  aws.String("dados"),
			BudgetLimit: &budgetTypes.Spend{Amount: aws.String("500")},
		}},
	}}
	repo := newTestRepository(map[string]interface{}{
		serviceSTS:     &fakeSTS{account: "123456789012"},
		serviceBudgets: fb,
	})

	got, err := repo.GetBudgets(context.Background(), testProfile, period)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "plataforma", got[0].Name)
	assert.InDelta(t, 1000.0, got[0].Limit, 1e-9)
	assert.InDelta(t, 1200.5, got[0].Planned, 1e-9)
	assert.InDelta(t, 310.25, got[0].Actual, 1e-9)

	assert.Equal(t, "dados", got[1].Name)
	assert.InDelta(t, 500.0, got[1].Planned, 1e-9, "planned falls back to the limit")

	require.Len(t, fb.calls, 2)
	assert.Equal(t, "123456789012", aws.ToString(fb.calls[0].AccountId))
}

func TestGetServiceCosts_MergesPagesAndSkipsCents(t *testing.T) {
	ce := &fakeCostExplorer{pages: []*costexplorer.GetCostAndUsageOutput{
		{
			ResultsByTime: []ceTypes.ResultByTime{{Groups: []ceTypes.Group{
				costGroup("Amazon EC2", "120.40"),
				costGroup("AWS KMS", "0.001"),
			}}},
			NextPageToken: aws.String("next"),
		},
		{
			ResultsByTime: []ceTypes.ResultByTime{{Groups: []ceTypes.Group{
				costGroup("Amazon S3", "15"),
				costGroup("Amazon EC2", "4.60"),
			}}},
		},
	}}
	repo := newTestRepository(map[string]interface{}{
		serviceSTS:          &fakeSTS{account: "123456789012"},
		serviceCostExplorer: ce,
	})

	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	data, err := repo.GetServiceCosts(context.Background(), testProfile, start, end, []string{"Team=core"})
	require.NoError(t, err)

	assert.Equal(t, "123456789012", data.AccountID)
	require.Len(t, data.ServiceCosts, 2)
	assert.Equal(t, "Amazon EC2", data.ServiceCosts[0].ServiceName)
	assert.InDelta(t, 125.0, data.ServiceCosts[0].Cost, 1e-9)
	assert.Equal(t, "Amazon S3", data.ServiceCosts[1].ServiceName)

	require.Len(t, ce.calls, 2)
	assert.Equal(t, "2026-03-01", aws.ToString(ce.calls[0].TimePeriod.Start))
	assert.Equal(t, "2026-04-01", aws.ToString(ce.calls[0].TimePeriod.End))
	assert.Nil(t, ce.calls[0].NextPageToken)
	assert.Equal(t, "next", aws.ToString(ce.calls[1].NextPageToken))
	require.NotNil(t, ce.calls[0].Filter)
	assert.Equal(t, "Team", aws.ToString(ce.calls[0].Filter.Tags.Key))
}

func TestGetServiceCosts_Errors(t *testing.T) {
	repo := newTestRepository(map[string]interface{}{
		serviceCostExplorer: &fakeCostExplorer{err: errors.New("access denied")},
	})
	now := time.Now()

	_, err := repo.GetServiceCosts(context.Background(), testProfile, now, now, []string{"sem-igual"})
	require.ErrorContains(t, err, "invalid tag format")

	_, err = repo.GetServiceCosts(context.Background(), testProfile, now, now, nil)
	require.ErrorContains(t, err, "access denied")
}

func TestParseTagFilter(t *testing.T) {
	filter, err := parseTagFilter(nil)
	require.NoError(t, err)
	assert.Nil(t, filter)

	filter, err = parseTagFilter([]string{"Team=core", "Env=prod"})
	require.NoError(t, err)
	require.Len(t, filter.And, 2)
	assert.Equal(t, []string{"prod"}, filter.And[1].Tags.Values)

	_, err = parseTagFilter([]string{"=x"})
	require.Error(t, err)
}

func TestUploadReports(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "rateio_alocadas.csv")
	jsonPath := filepath.Join(dir, "rateio.json")
	require.NoError(t, os.WriteFile(csvPath, []byte("a;b\n"), 0o600))
	require.NoError(t, os.WriteFile(jsonPath, []byte("{}"), 0o600))

	fs3 := &fakeS3{}
	repo := newTestRepository(map[string]interface{}{serviceS3: fs3})

	uris, err := repo.UploadReports(context.Background(), testProfile, "relatorios", "/rateio/run-1/", []string{csvPath, jsonPath})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"s3://relatorios/rateio/run-1/rateio_alocadas.csv",
		"s3://relatorios/rateio/run-1/rateio.json",
	}, uris)

	require.Len(t, fs3.objects, 2)
	assert.Equal(t, "relatorios", fs3.objects[0].bucket)
	assert.Equal(t, "a;b\n", fs3.objects[0].body)
	assert.Equal(t, "application/json", fs3.objects[1].contentType)

	_, err = repo.UploadReports(context.Background(), testProfile, "", "x", []string{csvPath})
	require.Error(t, err)

	_, err = repo.UploadReports(context.Background(), testProfile, "relatorios", "", []string{filepath.Join(dir, "missing.pdf")})
	require.ErrorContains(t, err, "error opening report")
}

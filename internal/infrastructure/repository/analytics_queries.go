package repository

// Templates reference tables as {schema}.table; the schema is substituted
// with a quoted identifier from configuration before execution.

// owner/manager schema
const (
	managerKPIsSQL = `
SELECT
	COUNT(DISTINCT b.business_id) AS num_businesses,
	COALESCE(SUM(b.overall_review_count), 0) AS total_reviews,
	ROUND(AVG(b.overall_avg_rating)::numeric, 2) AS avg_rating,
	(SELECT COALESCE(SUM(p.checkin_count), 0) FROM {schema}.fact_business_performance p) AS total_checkins,
	(SELECT ROUND(AVG(s.sentiment_score)::numeric, 3) FROM {schema}.fact_review_sentiment s) AS avg_sentiment
FROM {schema}.dim_business b`

	managerTimeSeriesSQL = `
SELECT
	month_id,
	SUM(review_count) AS total_reviews,
	SUM(checkin_count) AS total_checkins,
	SUM(tip_count) AS total_tips,
	ROUND(AVG(engagement_score)::numeric, 3) AS avg_engagement
FROM {schema}.fact_business_performance
GROUP BY month_id
ORDER BY month_id`

	managerSentimentSQL = `
SELECT
	sentiment_label,
	COUNT(*) AS review_count,
	ROUND(AVG(sentiment_score)::numeric, 3) AS avg_score
FROM {schema}.fact_review_sentiment
GROUP BY sentiment_label
ORDER BY review_count DESC`

	managerByDaySQL = `
SELECT
	d.day_of_week,
	COUNT(*) AS review_count,
	ROUND(AVG(s.sentiment_score)::numeric, 3) AS avg_sentiment
FROM {schema}.fact_review_sentiment s
JOIN {schema}.dim_date d ON d.date_id = s.date_id
GROUP BY d.day_of_week`
)

// marketing schema
const (
	marketingEngagementTrendsSQL = `
SELECT
	make_date(d.year, d.month, 1) AS period,
	COUNT(*) AS review_count,
	COALESCE(SUM(f.useful_votes + f.funny_votes + f.cool_votes), 0) AS total_votes,
	ROUND(AVG(f.stars)::numeric, 2) AS avg_stars
FROM {schema}.fact_customer_engagement f
JOIN {schema}.dim_date d ON d.date_id = f.date_id
GROUP BY d.year, d.month
ORDER BY d.year, d.month`

	marketingTopCategoriesSQL = `
SELECT
	c.category,
	COUNT(DISTINCT c.business_id) AS business_count,
	COUNT(f.review_id) AS review_count
FROM {schema}.business_category_bridge c
LEFT JOIN {schema}.fact_customer_engagement f ON f.business_id = c.business_id
GROUP BY c.category
ORDER BY review_count DESC
LIMIT 10`

	marketingRatingDistributionSQL = `
SELECT
	stars,
	COUNT(*) AS review_count
FROM {schema}.fact_customer_engagement
GROUP BY stars
ORDER BY stars`

	marketingUserSegmentsSQL = `
SELECT
	CASE
		WHEN review_count >= 100 THEN 'power'
		WHEN review_count >= 10 THEN 'regular'
		ELSE 'casual'
	END AS segment,
	COUNT(*) AS user_count,
	ROUND(AVG(average_stars)::numeric, 2) AS avg_stars,
	COALESCE(SUM(fans), 0) AS total_fans
FROM {schema}.dim_user
GROUP BY 1
ORDER BY user_count DESC`

	marketingTopCitiesSQL = `
SELECT
	b.city,
	b.state,
	COUNT(DISTINCT b.business_id) AS business_count,
	COUNT(f.review_id) AS review_count
FROM {schema}.dim_business b
LEFT JOIN {schema}.fact_customer_engagement f ON f.business_id = b.business_id
GROUP BY b.city, b.state
ORDER BY review_count DESC
LIMIT 10`
)

// investor schema
const (
	investorKPIsSQL = `
SELECT
	COUNT(*) AS total_businesses,
	COALESCE(SUM(review_count), 0) AS total_reviews,
	ROUND(AVG(stars)::numeric, 2) AS avg_stars,
	COUNT(*) FILTER (WHERE is_open::int = 1) AS open_businesses
FROM {schema}.dim_business`

	investorTrendsSQL = `
SELECT
	d.year,
	d.month,
	make_date(d.year, d.month, 1) AS period,
	SUM(p.review_count) AS total_reviews,
	SUM(p.checkin_count) AS total_checkins,
	ROUND(AVG(p.average_stars)::numeric, 2) AS avg_stars
FROM {schema}.fact_business_performance p
JOIN {schema}.dim_date d ON d.date_key = p.date_key
GROUP BY d.year, d.month
ORDER BY d.year, d.month`

	investorByCategorySQL = `
SELECT
	c.category_name,
	COUNT(DISTINCT fc.business_key) AS business_count,
	ROUND(AVG(b.stars)::numeric, 2) AS avg_stars
FROM {schema}.fact_business_categories fc
JOIN {schema}.dim_category c ON c.category_key = fc.category_key
JOIN {schema}.dim_business b ON b.business_key = fc.business_key
GROUP BY c.category_name
ORDER BY business_count DESC
LIMIT 15`
)

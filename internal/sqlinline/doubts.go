package sqlinline

const QInsertDoubt = `--sql fcda7d9f-1022-4626-8c8a-9f3af5db0123
insert into doubts(user_id, question, subject)
values ($1::uuid, $2::text, $3::text)
returning id, user_id, question, subject, solution, is_bookmarked, created_at;
`

const QSelectDoubtForUser = `--sql 063a2b09-3ccd-4939-8af2-ec045c2d0c42
select id, user_id, question, subject, solution, is_bookmarked, created_at
from doubts
where id = $1::uuid and user_id = $2::uuid
limit 1;
`

const QSelectUserDoubts = `--sql 76d6ff87-8429-42dd-bec1-f44869c85f01
select id, user_id, question, subject, solution, is_bookmarked, created_at
from doubts
where user_id = $1::uuid
order by created_at desc;
`

const QSelectBookmarkedDoubts = `--sql 0a0f3bde-7a00-42aa-aa01-0c203a3d6ee2
select id, user_id, question, subject, solution, is_bookmarked, created_at
from doubts
where user_id = $1::uuid and is_bookmarked
order by created_at desc;
`

const QSetDoubtBookmark = `--sql 499dd23f-8ede-4dd4-9413-c7411b68d3ac
update doubts
set is_bookmarked = $3::boolean
where id = $1::uuid and user_id = $2::uuid
returning id, user_id, question, subject, solution, is_bookmarked, created_at;
`

const QAttachDoubtSolution = `--sql 9dd848d0-d119-447d-8309-9163fc621818
update doubts
set solution = $3::text
where id = $1::uuid and user_id = $2::uuid and solution is null
returning id;
`

const QCountUserDoubts = `--sql 69b98bd2-a76e-4b87-8d3d-71eedea6cdfe
select count(*)::int as total,
  count(*) filter (where is_bookmarked)::int as bookmarked
from doubts
where user_id = $1::uuid;
`
